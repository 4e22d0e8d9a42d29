package service

import (
	"iot-dashboard/internal/access"
	"iot-dashboard/internal/domain"
)

// SecurityService security page, super-admin only at the route level
type SecurityService interface {
	Matrix() *SecurityMatrixResponse
}

type securityService struct {
	access *access.Controller
}

func NewSecurityService(ac *access.Controller) SecurityService {
	return &securityService{access: ac}
}

type SecurityMatrixResponse struct {
	Roles        []domain.Role        `json:"roles"`
	Destinations []domain.Destination `json:"destinations"`
	Matrix       []access.MatrixRow   `json:"matrix"`
}

func (s *securityService) Matrix() *SecurityMatrixResponse {
	return &SecurityMatrixResponse{
		Roles:        append([]domain.Role(nil), domain.Roles...),
		Destinations: s.access.Destinations(),
		Matrix:       s.access.PermissionMatrix(),
	}
}
