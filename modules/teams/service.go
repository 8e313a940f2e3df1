package teams

import (
	"errors"
	"fmt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrTeamNotFound is returned by name-resolving mutations when no team with
// the given name exists. Plain lookups report absence with a nil result
// instead.
type ErrTeamNotFound struct {
	Name string
}

func (e *ErrTeamNotFound) Error() string {
	return fmt.Sprintf("no team with name %q", e.Name)
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateTeam inserts a new team. A duplicate id or name surfaces as the
// storage layer's unique-constraint error.
func (s *Service) CreateTeam(id, name, addedBy string) (*Team, error) {
	team := &Team{ID: id, Name: name, AddedBy: addedBy}
	err := s.db.Create(team).Error
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (s *Service) GetTeam(id string) (*Team, error) {
	team := &Team{}
	err := s.db.First(team, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (s *Service) GetTeamByName(name string) (*Team, error) {
	team := &Team{}
	err := s.db.First(team, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (s *Service) GetAllTeams() ([]Team, error) {
	var list []Team
	err := s.db.Find(&list).Error
	return list, err
}

// AddMember adds a user to a team. Adding an existing member is a no-op, not
// an error; the conflict is resolved in the insert itself so two racing adds
// cannot produce a duplicate row.
func (s *Service) AddMember(teamId, userId, addedBy string) error {
	member := &TeamMember{TeamID: teamId, UserID: userId, AddedBy: addedBy}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "team_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(member).Error
}

// AddMemberByTeamName resolves the team by display name first and fails
// loudly when it does not exist, so a typo'd team name is not silently
// swallowed.
func (s *Service) AddMemberByTeamName(name, userId, addedBy string) error {
	team, err := s.GetTeamByName(name)
	if err != nil {
		return err
	}
	if team == nil {
		return &ErrTeamNotFound{Name: name}
	}
	return s.AddMember(team.ID, userId, addedBy)
}

// RemoveMember deletes a membership, reporting whether one actually existed.
// The existence check and delete run in one transaction so the bool cannot
// lie under concurrent removals.
func (s *Service) RemoveMember(teamId, userId string) (bool, error) {
	removed := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&TeamMember{}).Where("team_id = ? AND user_id = ?", teamId, userId).Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		err = tx.Where("team_id = ? AND user_id = ?", teamId, userId).Delete(&TeamMember{}).Error
		if err != nil {
			return err
		}
		removed = true
		return nil
	})
	return removed, err
}

// RemoveMemberByTeamName treats a missing team as "nothing to remove" and
// returns false rather than an error, unlike the add path.
func (s *Service) RemoveMemberByTeamName(name, userId string) (bool, error) {
	team, err := s.GetTeamByName(name)
	if err != nil {
		return false, err
	}
	if team == nil {
		return false, nil
	}
	return s.RemoveMember(team.ID, userId)
}

func (s *Service) GetTeamMembers(teamId string) ([]string, error) {
	var ids []string
	err := s.db.Model(&TeamMember{}).Where("team_id = ?", teamId).Pluck("user_id", &ids).Error
	return ids, err
}

// GetTeamMembersByName returns an empty list when the team does not exist.
func (s *Service) GetTeamMembersByName(name string) ([]string, error) {
	team, err := s.GetTeamByName(name)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return []string{}, nil
	}
	return s.GetTeamMembers(team.ID)
}

func (s *Service) IsTeamMember(teamId, userId string) (bool, error) {
	var count int64
	err := s.db.Model(&TeamMember{}).Where("team_id = ? AND user_id = ?", teamId, userId).Count(&count).Error
	return count > 0, err
}
