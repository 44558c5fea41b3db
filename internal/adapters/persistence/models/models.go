package models

import (
	"time"

	"libralend/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ============================================================
// Reference data: Authors & Categories
// ============================================================

// Author represents the authors table
type Author struct {
	ID        uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	FirstName string         `gorm:"size:100;not null;uniqueIndex:idx_authors_name" json:"first_name"`
	LastName  string         `gorm:"size:100;not null;uniqueIndex:idx_authors_name" json:"last_name"`
	Biography string         `gorm:"type:text" json:"biography,omitempty"`
	BirthDate *time.Time     `json:"birth_date,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Books []Book `gorm:"foreignKey:AuthorID" json:"books,omitempty"`
}

func (Author) TableName() string {
	return "authors"
}

// BeforeCreate assigns the entity id
func (a *Author) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// FullName returns the author's display name
func (a *Author) FullName() string {
	return a.FirstName + " " + a.LastName
}

// Category represents the categories table
type Category struct {
	ID          uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string         `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Books []Book `gorm:"foreignKey:CategoryID" json:"books,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

// BeforeCreate assigns the entity id
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ============================================================
// Catalog: Books
// ============================================================

// Book represents the books table.
// AvailableCopies is never written directly by callers; it changes
// only through the borrowing/availability path, which keeps it within
// [0, TotalCopies].
type Book struct {
	ID              uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	Title           string         `gorm:"size:200;not null;index" json:"title"`
	ISBN            string         `gorm:"size:20;not null;uniqueIndex" json:"isbn"`
	Description     string         `gorm:"type:text" json:"description,omitempty"`
	PageCount       int            `json:"page_count"`
	PublishedDate   time.Time      `json:"published_date"`
	TotalCopies     int            `gorm:"not null" json:"total_copies"`
	AvailableCopies int            `gorm:"not null" json:"available_copies"`
	AuthorID        uuid.UUID      `gorm:"type:char(36);not null;index" json:"author_id"`
	CategoryID      uuid.UUID      `gorm:"type:char(36);not null;index" json:"category_id"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Author   *Author   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Book) TableName() string {
	return "books"
}

// BeforeCreate assigns the entity id
func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// IsAvailable reports whether at least one copy can be borrowed
func (b *Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}

// CanBeBorrowed reports whether the book is available and not deleted
func (b *Book) CanBeBorrowed() bool {
	return b.IsAvailable() && !b.DeletedAt.Valid
}

// ============================================================
// Members
// ============================================================

// Member represents the members table
type Member struct {
	ID             uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	FirstName      string         `gorm:"size:100;not null" json:"first_name"`
	LastName       string         `gorm:"size:100;not null" json:"last_name"`
	Email          string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PhoneNumber    string         `gorm:"size:20;not null;uniqueIndex" json:"phone_number"`
	Address        string         `gorm:"size:500" json:"address,omitempty"`
	MembershipDate *time.Time     `json:"membership_date,omitempty"`
	ExpirationDate *time.Time     `json:"expiration_date,omitempty"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Member) TableName() string {
	return "members"
}

// BeforeCreate assigns the entity id
func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// FullName returns the member's display name
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// MembershipValid reports whether the member is active and the
// membership window has not expired. A nil expiration means the
// membership never expires.
func (m *Member) MembershipValid() bool {
	return m.IsActive && (m.ExpirationDate == nil || m.ExpirationDate.After(time.Now()))
}

// ============================================================
// Lending: BorrowRecords
// ============================================================

// BorrowRecord represents the borrow_records table. Records are created
// only by a successful borrow, mutated only by return or fine
// processing, and never physically deleted.
type BorrowRecord struct {
	ID         uuid.UUID           `gorm:"type:char(36);primaryKey" json:"id"`
	BookID     uuid.UUID           `gorm:"type:char(36);not null;index" json:"book_id"`
	MemberID   uuid.UUID           `gorm:"type:char(36);not null;index" json:"member_id"`
	BorrowDate time.Time           `gorm:"not null" json:"borrow_date"`
	DueDate    time.Time           `gorm:"not null;index" json:"due_date"`
	ReturnDate *time.Time          `json:"return_date,omitempty"`
	Status     domain.BorrowStatus `gorm:"size:20;not null;default:'BORROWED';index" json:"status"`
	FineAmount *float64            `gorm:"type:decimal(10,2)" json:"fine_amount,omitempty"`
	Notes      string              `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt      `gorm:"index" json:"-"`

	Book   *Book   `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (BorrowRecord) TableName() string {
	return "borrow_records"
}

// BeforeCreate assigns the entity id
func (r *BorrowRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IsOverdue reports whether the record is past due and still out
func (r *BorrowRecord) IsOverdue() bool {
	return r.Status.IsActive() && time.Now().After(r.DueDate)
}

// BorrowRecordResponse DTO with flattened book/member names
type BorrowRecordResponse struct {
	ID         uuid.UUID           `json:"id"`
	BookID     uuid.UUID           `json:"book_id"`
	BookTitle  string              `json:"book_title,omitempty"`
	MemberID   uuid.UUID           `json:"member_id"`
	MemberName string              `json:"member_name,omitempty"`
	BorrowDate time.Time           `json:"borrow_date"`
	DueDate    time.Time           `json:"due_date"`
	ReturnDate *time.Time          `json:"return_date,omitempty"`
	Status     domain.BorrowStatus `json:"status"`
	FineAmount *float64            `json:"fine_amount,omitempty"`
	Notes      string              `json:"notes,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

func (r *BorrowRecord) ToResponse() *BorrowRecordResponse {
	resp := &BorrowRecordResponse{
		ID:         r.ID,
		BookID:     r.BookID,
		MemberID:   r.MemberID,
		BorrowDate: r.BorrowDate,
		DueDate:    r.DueDate,
		ReturnDate: r.ReturnDate,
		Status:     r.Status,
		FineAmount: r.FineAmount,
		Notes:      r.Notes,
		CreatedAt:  r.CreatedAt,
	}

	if r.Book != nil {
		resp.BookTitle = r.Book.Title
	}
	if r.Member != nil {
		resp.MemberName = r.Member.FullName()
	}

	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates or updates the five tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Author{},
		&Category{},
		&Book{},
		&Member{},
		&BorrowRecord{},
	)
}
