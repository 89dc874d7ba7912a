package handler

import (
	"time"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/query"
)

// --- Users ---

type userResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, CreatedAt: u.CreatedAt}
}

type registerResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type loginUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type loginResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    loginUser `json:"user"`
}

// registerRequest documents the accepted fields; bodies are decoded loosely.
type registerRequest struct {
	Name     string `json:"name" example:"Alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"secret1"`
	Phone    string `json:"phone" example:"+5215512345678"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

// --- Data ---

type dataRequest struct {
	Name string `json:"name" example:"Al"`
	Age  int    `json:"age" example:"30"`
}

type dataListResponse struct {
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	TotalItems int64          `json:"total_item"`
	TotalPages int            `json:"total_page"`
	Data       []*domain.Data `json:"data"`
}

func toDataListResponse(p *query.Page[*domain.Data]) dataListResponse {
	return dataListResponse{
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
		Data:       p.Items,
	}
}

type dataResponse struct {
	Message string       `json:"message"`
	Data    *domain.Data `json:"data"`
}

// --- Services ---

type serviceResponse struct {
	ID        int64     `json:"id"`
	Service   string    `json:"service"`
	Price     float64   `json:"price"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toServiceResponse(s *domain.Service) serviceResponse {
	return serviceResponse{
		ID:        s.ID,
		Service:   s.Name,
		Price:     s.Price,
		Image:     s.ImageURL(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

type serviceEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Service serviceResponse `json:"service"`
}

// --- Common ---

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type validationErrorResponse struct {
	Errors map[string][]string `json:"errors"`
}
