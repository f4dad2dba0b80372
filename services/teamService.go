package services

import (
	"github.com/takdanai-ph/taskboard/domain"
	"github.com/takdanai-ph/taskboard/policy"
	"github.com/takdanai-ph/taskboard/workflow"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TeamService struct {
	teams domain.TeamRepository
	users domain.UserRepository
}

func NewTeamService(teams domain.TeamRepository, users domain.UserRepository) *TeamService {
	return &TeamService{teams: teams, users: users}
}

func (s *TeamService) GetAll() (domain.Teams, error) {
	return s.teams.GetAll()
}

func (s *TeamService) GetById(id string) (*domain.Team, error) {
	return s.teams.GetById(id)
}

func (s *TeamService) Create(actor workflow.Actor, name, description string) (domain.Team, error) {
	if !policy.CanManageTeams(actor.Role) {
		return domain.Team{}, domain.ErrForbidden()
	}
	if name == "" {
		return domain.Team{}, domain.ErrValidation("name is required")
	}

	existing, err := s.teams.FindByName(name)
	if err != nil {
		return domain.Team{}, err
	}
	if existing != nil {
		return domain.Team{}, domain.ErrTeamAlreadyExists()
	}

	return s.teams.Insert(domain.Team{Name: name, Description: description})
}

func (s *TeamService) Update(actor workflow.Actor, id string, name, description *string) (*domain.Team, error) {
	if !policy.CanManageTeams(actor.Role) {
		return nil, domain.ErrForbidden()
	}

	team, err := s.teams.GetById(id)
	if err != nil {
		return nil, err
	}

	if name != nil && *name != team.Name {
		existing, err := s.teams.FindByName(*name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrTeamAlreadyExists()
		}
		team.Name = *name
	}
	if description != nil {
		team.Description = *description
	}

	if err := s.teams.Update(*team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) Delete(actor workflow.Actor, id string) error {
	if !policy.CanManageTeams(actor.Role) {
		return domain.ErrForbidden()
	}
	if _, err := s.teams.GetById(id); err != nil {
		return err
	}
	return s.teams.Delete(id)
}

func (s *TeamService) AddMember(actor workflow.Actor, teamId, userId string) (*domain.Team, error) {
	if !policy.CanManageTeams(actor.Role) {
		return nil, domain.ErrForbidden()
	}

	team, err := s.teams.GetById(teamId)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetById(userId)
	if err != nil {
		return nil, err
	}
	if team.HasMember(user.Id) {
		return nil, domain.ErrUserAlreadyExists()
	}

	team.Members = append(team.Members, user.Id)
	if err := s.teams.Update(*team); err != nil {
		return nil, err
	}

	user.TeamId = &team.Id
	if err := s.users.Update(*user); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) RemoveMember(actor workflow.Actor, teamId, userId string) (*domain.Team, error) {
	if !policy.CanManageTeams(actor.Role) {
		return nil, domain.ErrForbidden()
	}

	team, err := s.teams.GetById(teamId)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetById(userId)
	if err != nil {
		return nil, err
	}

	members := make([]primitive.ObjectID, 0, len(team.Members))
	for _, m := range team.Members {
		if m != user.Id {
			members = append(members, m)
		}
	}
	team.Members = members

	// A removed leader also stops leading the team.
	if team.LeaderId != nil && *team.LeaderId == user.Id {
		team.LeaderId = nil
	}

	if err := s.teams.Update(*team); err != nil {
		return nil, err
	}

	if user.TeamId != nil && *user.TeamId == team.Id {
		user.TeamId = nil
		if err := s.users.Update(*user); err != nil {
			return nil, err
		}
	}
	return team, nil
}

// SetLeader promotes a member to team leader; the leader must belong to the
// team already.
func (s *TeamService) SetLeader(actor workflow.Actor, teamId, userId string) (*domain.Team, error) {
	if !policy.CanManageTeams(actor.Role) {
		return nil, domain.ErrForbidden()
	}

	team, err := s.teams.GetById(teamId)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetById(userId)
	if err != nil {
		return nil, err
	}
	if !team.HasMember(user.Id) {
		return nil, domain.ErrValidation("leader must be a team member")
	}

	team.LeaderId = &user.Id
	if err := s.teams.Update(*team); err != nil {
		return nil, err
	}
	return team, nil
}
