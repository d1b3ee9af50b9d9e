package models

type CreateProductRequest struct {
	StoreID     string `json:"storeId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	ProductURL  string `json:"productUrl"`
	Category    string `json:"category"`
	Size        string `json:"size"`
	Color       string `json:"color"`
	Style       string `json:"style"`
}

// UpdateProductRequest carries a partial field set. Nil pointers leave the
// column untouched.
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	ProductURL  *string `json:"productUrl"`
	Category    *string `json:"category"`
	Size        *string `json:"size"`
	Color       *string `json:"color"`
	Style       *string `json:"style"`
}

type UpsertStoreRequest struct {
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	LogoURL     string `json:"logoUrl"`
	WebsiteURL  string `json:"websiteUrl"`
}

type UpdateStoreRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logoUrl"`
	WebsiteURL  *string `json:"websiteUrl"`
	IsActive    *bool   `json:"isActive"`
}

type CreatePromptRequest struct {
	Name     string `json:"name"`
	Content  string `json:"content"`
	IsActive *bool  `json:"isActive"`
}

type UpdatePromptRequest struct {
	Name     *string `json:"name"`
	Content  *string `json:"content"`
	IsActive *bool   `json:"isActive"`
}

type TryOnRequest struct {
	ProductID    string `json:"productId"`
	UserID       string `json:"userId"`
	UserImageURL string `json:"userImageUrl"`
}

// TryOnLocalRequest is the catalog-free variant: the garment image comes
// straight from the caller instead of a product row.
type TryOnLocalRequest struct {
	ClothingImageURL string `json:"clothingImageUrl"`
	UserID           string `json:"userId"`
	UserImageURL     string `json:"userImageUrl"`
}

type ProfilePhotoRequest struct {
	UserID   string `json:"userId"`
	ImageURL string `json:"imageUrl"`
}

type CheckoutRequest struct {
	PackageID string `json:"packageId"`
	UserID    string `json:"userId"`
}

type AdminUpdateUserRequest struct {
	Name    *string `json:"name"`
	Role    *string `json:"role"`
	Credits *int    `json:"credits"`
}

type AdjustCreditsRequest struct {
	Amount int    `json:"amount"`
	Reason string `json:"reason"`
}

type CreatePackageRequest struct {
	Name         string `json:"name"`
	Credits      int    `json:"credits"`
	PriceInCents int64  `json:"priceInCents"`
	Description  string `json:"description"`
}

type UpdatePackageRequest struct {
	Name         *string `json:"name"`
	Credits      *int    `json:"credits"`
	PriceInCents *int64  `json:"priceInCents"`
	Description  *string `json:"description"`
	IsActive     *bool   `json:"isActive"`
}
