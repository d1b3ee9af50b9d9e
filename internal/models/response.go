package models

import (
	"database/sql"
	"time"
)

// The public API speaks camelCase JSON, mirroring what the web client
// expects from the Supabase row shapes.

type ErrorResponse struct {
	Error    string `json:"error"`
	Message  string `json:"message,omitempty"`
	Required int    `json:"required,omitempty"`
	Current  int    `json:"current,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ConfigResponse struct {
	SupabaseURL     string `json:"supabaseUrl"`
	SupabaseAnonKey string `json:"supabaseAnonKey"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type UserResponse struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Role             string    `json:"role"`
	Credits          int       `json:"credits"`
	ProfileImageURL  string    `json:"profileImageUrl,omitempty"`
	StripeCustomerID string    `json:"stripeCustomerId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

type StoreResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	LogoURL     string    `json:"logoUrl,omitempty"`
	WebsiteURL  string    `json:"websiteUrl,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ProductResponse struct {
	ID          string         `json:"id"`
	StoreID     string         `json:"storeId"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	ImageURL    string         `json:"imageUrl"`
	ProductURL  string         `json:"productUrl,omitempty"`
	Category    string         `json:"category,omitempty"`
	Size        string         `json:"size,omitempty"`
	Color       string         `json:"color,omitempty"`
	Style       string         `json:"style,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	Store       *StoreResponse `json:"store,omitempty"`
}

type PromptResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type GeneratedImageResponse struct {
	ID                string           `json:"id"`
	UserID            string           `json:"userId"`
	ProductID         string           `json:"productId,omitempty"`
	OriginalImageURL  string           `json:"originalImageUrl"`
	GeneratedImageURL string           `json:"generatedImageUrl"`
	PromptUsed        string           `json:"promptUsed"`
	CreatedAt         time.Time        `json:"createdAt"`
	Product           *ProductResponse `json:"product,omitempty"`
}

type CreditPackageResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Credits      int       `json:"credits"`
	PriceInCents int64     `json:"priceInCents"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CreditPurchaseResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Credits         int       `json:"credits"`
	AmountPaid      int64     `json:"amountPaid"`
	Status          string    `json:"status"`
	StripeSessionID string    `json:"stripeSessionId"`
	CreatedAt       time.Time `json:"createdAt"`
}

type TryOnResponse struct {
	ImageURL         string `json:"imageUrl"`
	CreditsRemaining int    `json:"creditsRemaining"`
}

type ProfilePhotoResponse struct {
	Success          bool   `json:"success"`
	CreditsRemaining int    `json:"creditsRemaining"`
	ProfileImageURL  string `json:"profileImageUrl"`
}

type CreditsResponse struct {
	Credits int `json:"credits"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

type PublishableKeyResponse struct {
	PublishableKey string `json:"publishableKey"`
}

type StatsResponse struct {
	TotalUsers                int `json:"totalUsers"`
	ClientCount               int `json:"clientCount"`
	StoreCount                int `json:"storeCount"`
	AdminCount                int `json:"adminCount"`
	TotalStores               int `json:"totalStores"`
	TotalProducts             int `json:"totalProducts"`
	TotalGeneratedImages      int `json:"totalGeneratedImages"`
	TotalCreditsInCirculation int `json:"totalCreditsInCirculation"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:               u.ID.String(),
		Email:            u.Email,
		Name:             u.Name,
		Role:             u.Role,
		Credits:          u.Credits,
		ProfileImageURL:  nullString(u.ProfileImageURL),
		StripeCustomerID: nullString(u.StripeCustomerID),
		CreatedAt:        u.CreatedAt,
	}
}

func NewStoreResponse(s Store) StoreResponse {
	return StoreResponse{
		ID:          s.ID.String(),
		UserID:      s.UserID.String(),
		Name:        s.Name,
		Description: nullString(s.Description),
		LogoURL:     nullString(s.LogoURL),
		WebsiteURL:  nullString(s.WebsiteURL),
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
	}
}

func NewProductResponse(p Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		StoreID:     p.StoreID.String(),
		Name:        p.Name,
		Description: nullString(p.Description),
		ImageURL:    p.ImageURL,
		ProductURL:  nullString(p.ProductURL),
		Category:    nullString(p.Category),
		Size:        nullString(p.Size),
		Color:       nullString(p.Color),
		Style:       nullString(p.Style),
		CreatedAt:   p.CreatedAt,
	}
}

func NewPromptResponse(p Prompt) PromptResponse {
	return PromptResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Content:   p.Content,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func NewGeneratedImageResponse(g GeneratedImage) GeneratedImageResponse {
	resp := GeneratedImageResponse{
		ID:                g.ID.String(),
		UserID:            g.UserID.String(),
		OriginalImageURL:  g.OriginalImageURL,
		GeneratedImageURL: g.GeneratedImageURL,
		PromptUsed:        g.PromptUsed,
		CreatedAt:         g.CreatedAt,
	}
	if g.ProductID.Valid {
		resp.ProductID = g.ProductID.UUID.String()
	}
	return resp
}

func NewCreditPackageResponse(p CreditPackage) CreditPackageResponse {
	return CreditPackageResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		Description:  nullString(p.Description),
		Credits:      p.Credits,
		PriceInCents: p.PriceInCents,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
	}
}

func NewCreditPurchaseResponse(p CreditPurchase) CreditPurchaseResponse {
	return CreditPurchaseResponse{
		ID:              p.ID.String(),
		UserID:          p.UserID.String(),
		Credits:         p.Credits,
		AmountPaid:      p.AmountPaid,
		Status:          p.Status,
		StripeSessionID: p.StripeSessionID,
		CreatedAt:       p.CreatedAt,
	}
}

func nullString(s sql.NullString) string {
	if s.Valid {
		return s.String
	}
	return ""
}
