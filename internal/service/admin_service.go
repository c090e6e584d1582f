package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
)

// AdminService backs the admin console's user overview.
type AdminService struct {
	UserRepo     *repository.UserRepository
	ProgressRepo *repository.ProgressRepository
}

func NewAdminService(userRepo *repository.UserRepository, progressRepo *repository.ProgressRepository) *AdminService {
	return &AdminService{UserRepo: userRepo, ProgressRepo: progressRepo}
}

// UserOverview is one row of the admin user table: the account plus its
// enrollments and persisted pre-test scores.
type UserOverview struct {
	User   model.User           `json:"user"`
	Access []model.CourseAccess `json:"access"`
}

func (s *AdminService) Users(page, limit int) ([]UserOverview, int64, error) {
	users, total, err := s.UserRepo.List(page, limit)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	access, err := s.ProgressRepo.ListAccessForUsers(ids)
	if err != nil {
		return nil, 0, err
	}

	byUser := make(map[uint][]model.CourseAccess, len(users))
	for _, a := range access {
		byUser[a.UserID] = append(byUser[a.UserID], a)
	}

	out := make([]UserOverview, 0, len(users))
	for _, u := range users {
		u.Password = ""
		out = append(out, UserOverview{User: u, Access: byUser[u.ID]})
	}
	return out, total, nil
}
