package controllers

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tolatiles/tola-tiles-api/models"
	"github.com/tolatiles/tola-tiles-api/services"
)

// imageURL resolves a storage key to an absolute URL through the image
// service; empty keys resolve to an empty string (omitted from JSON)
func imageURL(key string) string {
	if key == "" {
		return ""
	}
	svc := services.GetImageService()
	if svc == nil {
		return ""
	}
	url, err := svc.GetImageURL(key)
	if err != nil {
		return ""
	}
	return url
}

// primaryImageURL picks the image flagged primary, falling back to the first
// image when none is flagged
func primaryTileImageURL(images []models.TileImage) string {
	for _, img := range images {
		if img.IsPrimary {
			return imageURL(img.ImageKey)
		}
	}
	if len(images) > 0 {
		return imageURL(images[0].ImageKey)
	}
	return ""
}

func primaryProjectImageURL(images []models.ProjectImage) string {
	for _, img := range images {
		if img.IsPrimary {
			return imageURL(img.ImageKey)
		}
	}
	if len(images) > 0 {
		return imageURL(images[0].ImageKey)
	}
	return ""
}

// ProductTypeResponse is the list shape for product types
type ProductTypeResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description"`
	ImageURL        string    `json:"image_url,omitempty"`
	IconName        string    `json:"icon_name"`
	DisplayOrder    int       `json:"display_order"`
	Active          bool      `json:"active"`
	ShowInNavbar    bool      `json:"show_in_navbar"`
	TilesCount      int       `json:"tiles_count"`
	CategoriesCount int       `json:"categories_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProductTypeDetailResponse adds the nested categories
type ProductTypeDetailResponse struct {
	ProductTypeResponse
	Categories []CategoryResponse `json:"categories"`
}

func toProductTypeResponse(pt *models.ProductType) ProductTypeResponse {
	return ProductTypeResponse{
		ID:              pt.ID,
		Name:            pt.Name,
		Slug:            pt.Slug,
		Description:     pt.Description,
		ImageURL:        imageURL(pt.ImageKey),
		IconName:        pt.IconName,
		DisplayOrder:    pt.DisplayOrder,
		Active:          pt.Active,
		ShowInNavbar:    pt.ShowInNavbar,
		TilesCount:      len(pt.Tiles),
		CategoriesCount: len(pt.Categories),
		CreatedAt:       pt.CreatedAt,
		UpdatedAt:       pt.UpdatedAt,
	}
}

func toProductTypeDetailResponse(pt *models.ProductType) ProductTypeDetailResponse {
	categories := make([]CategoryResponse, 0, len(pt.Categories))
	for i := range pt.Categories {
		categories = append(categories, toCategoryResponse(&pt.Categories[i]))
	}
	return ProductTypeDetailResponse{
		ProductTypeResponse: toProductTypeResponse(pt),
		Categories:          categories,
	}
}

// CategoryResponse is the list shape for tile categories
type CategoryResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description"`
	ImageURL        string    `json:"image_url,omitempty"`
	ProductTypeID   *uint     `json:"product_type"`
	ProductTypeName string    `json:"product_type_name,omitempty"`
	DisplayOrder    int       `json:"order"`
	Active          bool      `json:"active"`
	TilesCount      int       `json:"tiles_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CategoryDetailResponse adds the nested tiles
type CategoryDetailResponse struct {
	CategoryResponse
	Tiles []TileResponse `json:"tiles"`
}

func toCategoryResponse(category *models.TileCategory) CategoryResponse {
	resp := CategoryResponse{
		ID:            category.ID,
		Name:          category.Name,
		Slug:          category.Slug,
		Description:   category.Description,
		ImageURL:      imageURL(category.ImageKey),
		ProductTypeID: category.ProductTypeID,
		DisplayOrder:  category.DisplayOrder,
		Active:        category.Active,
		TilesCount:    len(category.Tiles),
		CreatedAt:     category.CreatedAt,
		UpdatedAt:     category.UpdatedAt,
	}
	if category.ProductType != nil {
		resp.ProductTypeName = category.ProductType.Name
	}
	return resp
}

func toCategoryDetailResponse(category *models.TileCategory) CategoryDetailResponse {
	tiles := make([]TileResponse, 0, len(category.Tiles))
	for i := range category.Tiles {
		tiles = append(tiles, toTileResponse(&category.Tiles[i]))
	}
	return CategoryDetailResponse{
		CategoryResponse: toCategoryResponse(category),
		Tiles:            tiles,
	}
}

// TileResponse is the list shape for tiles
type TileResponse struct {
	ID              uint            `json:"id"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	Description     string          `json:"description"`
	CategoryID      uint            `json:"category"`
	CategoryName    string          `json:"category_name,omitempty"`
	ProductTypeID   *uint           `json:"product_type"`
	ProductTypeName string          `json:"product_type_name,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Size            string          `json:"size"`
	Material        string          `json:"material"`
	InStock         bool            `json:"in_stock"`
	SKU             string          `json:"sku"`
	PrimaryImage    string          `json:"primary_image,omitempty"`
	ImagesCount     int             `json:"images_count"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TileDetailResponse adds the full image collection
type TileDetailResponse struct {
	TileResponse
	Images []TileImageResponse `json:"images"`
}

func toTileResponse(tile *models.Tile) TileResponse {
	resp := TileResponse{
		ID:            tile.ID,
		Title:         tile.Title,
		Slug:          tile.Slug,
		Description:   tile.Description,
		CategoryID:    tile.CategoryID,
		ProductTypeID: tile.ProductTypeID,
		Price:         tile.Price,
		Size:          tile.Size,
		Material:      tile.Material,
		InStock:       tile.InStock,
		SKU:           tile.SKU,
		PrimaryImage:  primaryTileImageURL(tile.Images),
		ImagesCount:   len(tile.Images),
		CreatedAt:     tile.CreatedAt,
		UpdatedAt:     tile.UpdatedAt,
	}
	if tile.Category.ID != 0 {
		resp.CategoryName = tile.Category.Name
	}
	if tile.ProductType != nil {
		resp.ProductTypeName = tile.ProductType.Name
	}
	return resp
}

func toTileDetailResponse(tile *models.Tile) TileDetailResponse {
	images := make([]TileImageResponse, 0, len(tile.Images))
	for i := range tile.Images {
		images = append(images, toTileImageResponse(&tile.Images[i]))
	}
	return TileDetailResponse{
		TileResponse: toTileResponse(tile),
		Images:       images,
	}
}

// TileImageResponse is the shape for tile images
type TileImageResponse struct {
	ID           uint      `json:"id"`
	TileID       uint      `json:"tile_id"`
	ImageURL     string    `json:"image_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Caption      string    `json:"caption"`
	IsPrimary    bool      `json:"is_primary"`
	CreatedAt    time.Time `json:"created_at"`
}

func toTileImageResponse(image *models.TileImage) TileImageResponse {
	thumbnail := image.ThumbnailKey
	if thumbnail == "" {
		// Fall back to the full image when no thumbnail was generated
		thumbnail = image.ImageKey
	}
	return TileImageResponse{
		ID:           image.ID,
		TileID:       image.TileID,
		ImageURL:     imageURL(image.ImageKey),
		ThumbnailURL: imageURL(thumbnail),
		Caption:      image.Caption,
		IsPrimary:    image.IsPrimary,
		CreatedAt:    image.CreatedAt,
	}
}

// ProjectResponse is the list shape for projects
type ProjectResponse struct {
	ID                uint      `json:"id"`
	Title             string    `json:"title"`
	Slug              string    `json:"slug"`
	Description       string    `json:"description"`
	Client            string    `json:"client"`
	Location          string    `json:"location"`
	CompletedDate     time.Time `json:"completed_date"`
	Status            string    `json:"status"`
	StatusDisplay     string    `json:"status_display"`
	Featured          bool      `json:"featured"`
	ProductTypeID     *uint     `json:"product_type"`
	ProductTypeName   string    `json:"product_type_name,omitempty"`
	AreaSize          string    `json:"area_size"`
	Testimonial       string    `json:"testimonial"`
	PrimaryImage      string    `json:"primary_image,omitempty"`
	ImagesCount       int       `json:"images_count"`
	TestimonialsCount int       `json:"testimonials_count"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProjectDetailResponse adds images, used tiles and testimonials
type ProjectDetailResponse struct {
	ProjectResponse
	Images       []ProjectImageResponse `json:"images"`
	TilesUsed    []TileResponse         `json:"tiles_used"`
	Testimonials []TestimonialResponse  `json:"testimonials"`
}

func toProjectResponse(project *models.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:                project.ID,
		Title:             project.Title,
		Slug:              project.Slug,
		Description:       project.Description,
		Client:            project.Client,
		Location:          project.Location,
		CompletedDate:     project.CompletedDate,
		Status:            project.Status,
		StatusDisplay:     models.ProjectStatusDisplay(project.Status),
		Featured:          project.Featured,
		ProductTypeID:     project.ProductTypeID,
		AreaSize:          project.AreaSize,
		Testimonial:       project.Testimonial,
		PrimaryImage:      primaryProjectImageURL(project.Images),
		ImagesCount:       len(project.Images),
		TestimonialsCount: len(project.Testimonials),
		CreatedAt:         project.CreatedAt,
		UpdatedAt:         project.UpdatedAt,
	}
	if project.ProductType != nil {
		resp.ProductTypeName = project.ProductType.Name
	}
	return resp
}

func toProjectDetailResponse(project *models.Project) ProjectDetailResponse {
	images := make([]ProjectImageResponse, 0, len(project.Images))
	for i := range project.Images {
		images = append(images, toProjectImageResponse(&project.Images[i]))
	}
	tiles := make([]TileResponse, 0, len(project.TilesUsed))
	for i := range project.TilesUsed {
		tiles = append(tiles, toTileResponse(&project.TilesUsed[i]))
	}
	testimonials := make([]TestimonialResponse, 0, len(project.Testimonials))
	for i := range project.Testimonials {
		testimonials = append(testimonials, toTestimonialResponse(&project.Testimonials[i]))
	}
	return ProjectDetailResponse{
		ProjectResponse: toProjectResponse(project),
		Images:          images,
		TilesUsed:       tiles,
		Testimonials:    testimonials,
	}
}

// ProjectImageResponse is the shape for project images
type ProjectImageResponse struct {
	ID        uint      `json:"id"`
	ProjectID uint      `json:"project_id"`
	ImageURL  string    `json:"image_url"`
	Caption   string    `json:"caption"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

func toProjectImageResponse(image *models.ProjectImage) ProjectImageResponse {
	return ProjectImageResponse{
		ID:        image.ID,
		ProjectID: image.ProjectID,
		ImageURL:  imageURL(image.ImageKey),
		Caption:   image.Caption,
		IsPrimary: image.IsPrimary,
		CreatedAt: image.CreatedAt,
	}
}

// TeamMemberResponse is the shape for team members
type TeamMemberResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Position     string    `json:"position"`
	Bio          string    `json:"bio"`
	ImageURL     string    `json:"image_url,omitempty"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	DisplayOrder int       `json:"display_order"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toTeamMemberResponse(member *models.TeamMember) TeamMemberResponse {
	return TeamMemberResponse{
		ID:           member.ID,
		Name:         member.Name,
		Position:     member.Position,
		Bio:          member.Bio,
		ImageURL:     imageURL(member.ImageKey),
		Email:        member.Email,
		Phone:        member.Phone,
		DisplayOrder: member.DisplayOrder,
		Active:       member.Active,
		CreatedAt:    member.CreatedAt,
		UpdatedAt:    member.UpdatedAt,
	}
}

// TestimonialResponse is the shape for customer testimonials
type TestimonialResponse struct {
	ID           uint      `json:"id"`
	CustomerName string    `json:"customer_name"`
	Location     string    `json:"location"`
	Testimonial  string    `json:"testimonial"`
	ProjectID    *uint     `json:"project"`
	ProjectTitle string    `json:"project_title,omitempty"`
	Rating       int       `json:"rating"`
	ImageURL     string    `json:"image_url,omitempty"`
	Date         time.Time `json:"date"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toTestimonialResponse(t *models.CustomerTestimonial) TestimonialResponse {
	resp := TestimonialResponse{
		ID:           t.ID,
		CustomerName: t.CustomerName,
		Location:     t.Location,
		Testimonial:  t.Testimonial,
		ProjectID:    t.ProjectID,
		Rating:       t.Rating,
		ImageURL:     imageURL(t.ImageKey),
		Date:         t.Date,
		Approved:     t.Approved,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if t.Project != nil {
		resp.ProjectTitle = t.Project.Title
	}
	return resp
}

// UserResponse is the shape for authenticated users
type UserResponse struct {
	ID        uint             `json:"id"`
	Username  string           `json:"username"`
	Email     string           `json:"email"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	IsStaff   bool             `json:"is_staff"`
	Profile   *ProfileResponse `json:"profile,omitempty"`
}

// ProfileResponse is the nested profile shape
type ProfileResponse struct {
	Bio             string `json:"bio"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	Preferences     string `json:"preferences"`
}

func toUserResponse(user *models.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsStaff:   user.IsStaff,
	}
	if user.Profile != nil {
		resp.Profile = &ProfileResponse{
			Bio:             user.Profile.Bio,
			ProfileImageURL: imageURL(user.Profile.ImageKey),
			Phone:           user.Profile.Phone,
			Address:         user.Profile.Address,
			Preferences:     user.Profile.Preferences,
		}
	}
	return resp
}

// MessageResponse is the shape for chat messages
type MessageResponse struct {
	ID               uint      `json:"id"`
	ConversationID   uint      `json:"conversation"`
	SenderID         uint      `json:"sender"`
	SenderUsername   string    `json:"sender_username"`
	ReceiverID       uint      `json:"receiver"`
	ReceiverUsername string    `json:"receiver_username"`
	Content          string    `json:"content"`
	AttachmentURL    string    `json:"attachment_url,omitempty"`
	IsRead           bool      `json:"is_read"`
	IsAdminMessage   bool      `json:"is_admin_message"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

func toMessageResponse(message *models.Message) MessageResponse {
	return MessageResponse{
		ID:               message.ID,
		ConversationID:   message.ConversationID,
		SenderID:         message.SenderID,
		SenderUsername:   message.Sender.Username,
		ReceiverID:       message.ReceiverID,
		ReceiverUsername: message.Receiver.Username,
		Content:          message.Content,
		AttachmentURL:    imageURL(message.AttachmentKey),
		IsRead:           message.IsRead,
		IsAdminMessage:   message.IsAdminMessage,
		Status:           message.Status,
		CreatedAt:        message.CreatedAt,
	}
}

// ConversationResponse is the shape for conversation listings
type ConversationResponse struct {
	ID           uint             `json:"id"`
	Participants []UserResponse   `json:"participants"`
	LastMessage  *MessageResponse `json:"last_message"`
	UnreadCount  int64            `json:"unread_count"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func toConversationResponse(summary *models.ConversationSummary) ConversationResponse {
	participants := make([]UserResponse, 0, len(summary.Participants))
	for i := range summary.Participants {
		participants = append(participants, toUserResponse(&summary.Participants[i]))
	}
	resp := ConversationResponse{
		ID:           summary.Conversation.ID,
		Participants: participants,
		UnreadCount:  summary.UnreadCount,
		CreatedAt:    summary.Conversation.CreatedAt,
		UpdatedAt:    summary.Conversation.UpdatedAt,
	}
	if summary.LastMessage != nil {
		message := toMessageResponse(summary.LastMessage)
		resp.LastMessage = &message
	}
	return resp
}
