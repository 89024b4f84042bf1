package handlers

import (
	"errors"
	"net/http"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/store"
)

// Auth groups the registration, login, and profile handlers.
type Auth struct {
	users  store.UserStore
	tokens *auth.Tokens
}

// NewAuth creates the Auth handler group.
func NewAuth(users store.UserStore, tokens *auth.Tokens) *Auth {
	return &Auth{users: users, tokens: tokens}
}

// Register creates a new account and returns a token for it.
// POST /api/auth/register
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := registerSchema.validate(map[string]string{
		"name": in.Name, "email": in.Email, "password": in.Password,
	}); errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	hash, err := models.HashPassword(in.Password)
	if err != nil {
		respondInternal(w, "hash password failed", err)
		return
	}

	user, err := a.users.Create(strings.TrimSpace(in.Name), in.Email, hash)
	if errors.Is(err, store.ErrDuplicateEmail) {
		respondError(w, http.StatusBadRequest, "User with this email already exists")
		return
	}
	if err != nil {
		respondInternal(w, "create user failed", err)
		return
	}

	token, err := a.tokens.Issue(user.ID)
	if err != nil {
		respondInternal(w, "issue token failed", err)
		return
	}

	respondOK(w, http.StatusCreated, map[string]any{"token": token, "user": user})
}

// Login verifies credentials and returns a fresh token. The error
// message is identical for an unknown email and a wrong password so the
// response does not reveal which one failed.
// POST /api/auth/login
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := loginSchema.validate(map[string]string{
		"email": in.Email, "password": in.Password,
	}); errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	user, err := a.users.FindByEmail(in.Email)
	if err != nil {
		respondInternal(w, "login lookup failed", err)
		return
	}
	if user == nil || !user.CheckPassword(in.Password) {
		respondError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := a.tokens.Issue(user.ID)
	if err != nil {
		respondInternal(w, "issue token failed", err)
		return
	}

	respondOK(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

// Me returns the authenticated user's profile.
// GET /api/auth/me
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	user, err := a.users.FindByID(userID)
	if err != nil {
		respondInternal(w, "load profile failed", err)
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	respondOK(w, http.StatusOK, map[string]any{"user": user})
}

// UpdateProfile changes name, bio, and/or avatar. Email and role are
// immutable through the API.
// PUT /api/auth/profile
func (a *Auth) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	var in struct {
		Name   string `json:"name"`
		Bio    string `json:"bio"`
		Avatar string `json:"avatar"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := profileSchema.validate(map[string]string{
		"name": in.Name, "bio": in.Bio,
	}); errs != nil {
		respondFieldErrors(w, errs)
		return
	}

	user, err := a.users.FindByID(userID)
	if err != nil {
		respondInternal(w, "load profile failed", err)
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	// Only supplied fields change.
	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}
	if in.Bio != "" {
		user.Bio = in.Bio
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := a.users.Update(user); err != nil {
		respondInternal(w, "update profile failed", err)
		return
	}

	respondOK(w, http.StatusOK, map[string]any{"user": user})
}
