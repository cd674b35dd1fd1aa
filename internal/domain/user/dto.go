package user

type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	// Password may be omitted when an admin creates a company member; a
	// default is assigned in that flow. Register rejects an empty password.
	Password string `json:"password" binding:"omitempty,min=6"`
	Role     string `json:"role"`
}

type UpdateUserInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

type UserView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
