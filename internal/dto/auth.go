package dto

type RegisterRequestDTO struct {
	Login    string `json:"login" validate:"required,min=3,max=50" example:"player1"`
	Password string `json:"password" validate:"required,min=8" example:"password123"`
}

type RegisterResponseDTO struct {
	Message string `json:"message" example:"User successfully registered"`
}

type LoginRequestDTO struct {
	Login    string `json:"login" validate:"required,min=3,max=50" example:"player1"`
	Password string `json:"password" validate:"required,min=8" example:"password123"`
}

type LoginResponseDTO struct {
	Message string `json:"message" example:"User successfully authenticated"`
}
