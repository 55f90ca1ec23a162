package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openboard/tracker/internal/core/domain"
	"github.com/openboard/tracker/internal/core/ports"
)

const birthDateFormat = "2006-01-02"

// UserHandler serves account signup and management.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type signupRequest struct {
	Username        string `json:"username"   validate:"required,min=3,max=150"`
	Password        string `json:"password"   validate:"required,min=8"`
	FirstName       string `json:"first_name" validate:"max=150"`
	LastName        string `json:"last_name"  validate:"max=150"`
	Email           string `json:"email"      validate:"omitempty,email"`
	BirthDate       string `json:"date_birth" validate:"required,datetime=2006-01-02"`
	CanBeContacted  bool   `json:"can_be_contacted"`
	CanDataBeShared bool   `json:"can_data_be_shared"`
}

type updateUserRequest struct {
	Password        *string `json:"password"   validate:"omitempty,min=8"`
	FirstName       *string `json:"first_name" validate:"omitempty,max=150"`
	LastName        *string `json:"last_name"  validate:"omitempty,max=150"`
	Email           *string `json:"email"      validate:"omitempty,email"`
	BirthDate       *string `json:"date_birth" validate:"omitempty,datetime=2006-01-02"`
	CanBeContacted  *bool   `json:"can_be_contacted"`
	CanDataBeShared *bool   `json:"can_data_be_shared"`
}

// userResponse is the full representation, only ever shown to the account
// owner.
type userResponse struct {
	ID              int64  `json:"id"`
	Username        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	BirthDate       string `json:"date_birth"`
	CanBeContacted  bool   `json:"can_be_contacted"`
	CanDataBeShared bool   `json:"can_data_be_shared"`
	CreatedAt       string `json:"created_time"`
}

// publicUserResponse hides contact details and the privacy-sensitive fields
// from everyone but the owner.
type publicUserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	CreatedAt string `json:"created_time"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:              u.ID,
		Username:        u.Username,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		BirthDate:       u.BirthDate.Format(birthDateFormat),
		CanBeContacted:  u.CanBeContacted,
		CanDataBeShared: u.CanDataBeShared,
		CreatedAt:       u.CreatedAt.Format(time.RFC3339),
	}
}

func newPublicUserResponse(u *domain.User) publicUserResponse {
	return publicUserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// userRepresentation picks the full or redacted view depending on who asks.
func userRepresentation(u *domain.User, callerID int64) any {
	if u.ID == callerID {
		return newUserResponse(u)
	}
	return newPublicUserResponse(u)
}

// Signup creates a new account. This is the only unauthenticated mutation
// in the API.
//
// @Summary      Sign up
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/users/ [post]
func (h *UserHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	birthDate, err := time.Parse(birthDateFormat, req.BirthDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date_birth must match format 2006-01-02")
	}

	user, err := h.userService.Signup(c.Request().Context(), ports.SignupInput{
		Username:        req.Username,
		Password:        req.Password,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		BirthDate:       birthDate,
		CanBeContacted:  req.CanBeContacted,
		CanDataBeShared: req.CanDataBeShared,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, newUserResponse(user))
}

// List returns all users, redacted for everyone but the caller themself.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200  {object}  listResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/users/ [get]
func (h *UserHandler) List(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	page := pageFromRequest(c)
	users, total, err := h.userService.List(c.Request().Context(), page)
	if err != nil {
		return err
	}

	results := make([]any, 0, len(users))
	for i := range users {
		results = append(results, userRepresentation(&users[i], callerID))
	}

	return c.JSON(http.StatusOK, newListResponse(c, page, total, results))
}

// Get returns one user.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      int  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{user_id}/ [get]
func (h *UserHandler) Get(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}

	user, err := h.userService.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userRepresentation(user, callerID))
}

// Update modifies the caller's own account. PUT requires the full
// representation; PATCH applies only the provided fields.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      int                true  "User id"
// @Param        body     body      updateUserRequest  true  "Fields to update"
// @Success      200  {object}  userResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{user_id}/ [patch]
func (h *UserHandler) Update(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if c.Request().Method == http.MethodPut && req.BirthDate == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date_birth is required")
	}

	input := ports.UpdateUserInput{
		Password:        req.Password,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		CanBeContacted:  req.CanBeContacted,
		CanDataBeShared: req.CanDataBeShared,
	}
	if req.BirthDate != nil {
		birthDate, err := time.Parse(birthDateFormat, *req.BirthDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date_birth must match format 2006-01-02")
		}
		input.BirthDate = &birthDate
	}

	user, err := h.userService.Update(c.Request().Context(), callerID, userID, input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newUserResponse(user))
}

// Delete removes the caller's own account.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        user_id  path  int  true  "User id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{user_id}/ [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), callerID, userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
