package store

import (
	"github.com/kasuganosora/epicadventure/game/entity"
	"github.com/kasuganosora/epicadventure/plugin/hook"
	"go.uber.org/zap"
)

func (s *Store) findQuest(id string) *entity.Quest {
	for i := range s.quests {
		if s.quests[i].ID == id {
			return &s.quests[i]
		}
	}
	return nil
}

// AddQuest appends q to the quest log. Quests without an id or with a
// duplicate id are ignored.
func (s *Store) AddQuest(q entity.Quest) bool {
	return s.apply(func() bool { return s.addQuest(q) })
}

func (s *Store) addQuest(q entity.Quest) bool {
	if q.ID == "" || s.findQuest(q.ID) != nil {
		return false
	}
	q.MaxProgress = max(1, q.MaxProgress)
	q.Progress = min(max(0, q.Progress), q.MaxProgress)
	if q.Completed {
		q.Progress = q.MaxProgress
	}
	q.Rewards.Items = append([]string{}, q.Rewards.Items...)
	s.quests = append(s.quests, q)
	return true
}

// GenerateQuest draws a new quest for the player's level and adds it.
func (s *Store) GenerateQuest() entity.Quest {
	var q entity.Quest
	s.apply(func() bool {
		s.questSeq++
		q = s.gen.Quest(s.player.Level, s.questSeq)
		return s.addQuest(q)
	})
	return q
}

// UpdateQuestProgress sets a quest's progress, clamped to [0, MaxProgress].
// Reaching the cap completes the quest and pays it. Completed quests ignore
// further updates.
func (s *Store) UpdateQuestProgress(id string, progress int) bool {
	return s.apply(func() bool {
		q := s.findQuest(id)
		if q == nil || q.Completed {
			return false
		}
		return s.setProgress(q, progress)
	})
}

func (s *Store) setProgress(q *entity.Quest, progress int) bool {
	progress = min(max(0, progress), q.MaxProgress)
	if progress == q.Progress && progress < q.MaxProgress {
		return false
	}
	q.Progress = progress
	if progress == q.MaxProgress {
		s.finishQuest(q)
	}
	return true
}

// CompleteQuest completes a quest directly and pays it once.
func (s *Store) CompleteQuest(id string) bool {
	return s.apply(func() bool {
		q := s.findQuest(id)
		if q == nil || q.Completed {
			return false
		}
		s.finishQuest(q)
		return true
	})
}

// finishQuest is the single incomplete-to-complete transition; it is the only
// place quest rewards are paid.
func (s *Store) finishQuest(q *entity.Quest) {
	q.Completed = true
	q.Progress = q.MaxProgress
	s.counters.QuestsCompleted++

	s.gainXP(q.Rewards.XP)
	s.player.Gold += q.Rewards.Gold
	s.player.Inventory = append(s.player.Inventory, q.Rewards.Items...)

	s.logger.Info("quest completed", zap.String("quest", q.ID), zap.Int("xp", q.Rewards.XP))
	s.emit(hook.OnQuestComplete, map[string]interface{}{
		"quest_id": q.ID,
		"title":    q.Title,
		"xp":       q.Rewards.XP,
		"gold":     q.Rewards.Gold,
		"items":    append([]string{}, q.Rewards.Items...),
	})
	s.checkAchievements()
}

// advanceObjective moves every open quest with the given objective one step.
func (s *Store) advanceObjective(obj entity.Objective) {
	for i := range s.quests {
		q := &s.quests[i]
		if q.Objective != obj || q.Completed {
			continue
		}
		s.setProgress(q, q.Progress+1)
	}
}
