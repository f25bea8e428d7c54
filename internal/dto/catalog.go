package dto

import "github.com/xperienceoutdoors/Resav2/internal/domain"

// CreateCategoryRequest creates a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Position    int    `json:"position"`
}

// CategoryResponse is the public view of a category
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Position    int    `json:"position"`
}

// ToCategoryResponse converts a domain category
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, Position: c.Position}
}

// CreateResourceRequest creates a resource
type CreateResourceRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// ResourceResponse is the public view of a resource
type ResourceResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	IsActive bool   `json:"is_active"`
}

// ToResourceResponse converts a domain resource
func ToResourceResponse(r *domain.Resource) ResourceResponse {
	return ResourceResponse{ID: r.ID, Name: r.Name, Quantity: r.Quantity, IsActive: r.IsActive}
}

// CreatePackageRequest creates a package for an activity
type CreatePackageRequest struct {
	ActivityID      string  `json:"activity_id" binding:"required"`
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"gte=0"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0"`
	MaxParticipants int     `json:"max_participants" binding:"required,gt=0"`
}

// PackageResponse is the public view of a package
type PackageResponse struct {
	ID              string  `json:"id"`
	ActivityID      string  `json:"activity_id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	MaxParticipants int     `json:"max_participants"`
	IsActive        bool    `json:"is_active"`
}

// ToPackageResponse converts a domain package
func ToPackageResponse(p *domain.Package) PackageResponse {
	return PackageResponse{
		ID:              p.ID,
		ActivityID:      p.ActivityID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		DurationMinutes: p.DurationMinutes,
		MaxParticipants: p.MaxParticipants,
		IsActive:        p.IsActive,
	}
}

// CreateActivityRequest creates an activity
type CreateActivityRequest struct {
	CategoryID  string   `json:"category_id"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Capacity    int      `json:"capacity" binding:"required,gt=0"`
	ResourceIDs []string `json:"resource_ids"`
}

// ActivityResponse is the public view of an activity
type ActivityResponse struct {
	ID          string   `json:"id"`
	CategoryID  string   `json:"category_id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Capacity    int      `json:"capacity"`
	ResourceIDs []string `json:"resource_ids,omitempty"`
	IsActive    bool     `json:"is_active"`
}

// ToActivityResponse converts a domain activity
func ToActivityResponse(a *domain.Activity) ActivityResponse {
	return ActivityResponse{
		ID:          a.ID,
		CategoryID:  a.CategoryID,
		Name:        a.Name,
		Description: a.Description,
		Capacity:    a.Capacity,
		ResourceIDs: a.ResourceIDs,
		IsActive:    a.IsActive,
	}
}

// UpdateCompanyRequest updates company settings
type UpdateCompanyRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Timezone string `json:"timezone"`
	Currency string `json:"currency"`
}

// CompanyResponse is the public view of a company
type CompanyResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Timezone string `json:"timezone"`
	Currency string `json:"currency"`
}

// ToCompanyResponse converts a domain company
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		ID:       c.ID,
		Name:     c.Name,
		Slug:     c.Slug,
		Email:    c.Email,
		Phone:    c.Phone,
		Address:  c.Address,
		Timezone: c.Timezone,
		Currency: c.Currency,
	}
}
