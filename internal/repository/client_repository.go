package repository

import (
	"context"
	"strings"

	"github.com/sjperalta/prestamos-api/internal/models"
	"gorm.io/gorm"
)

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Client, error)
	FindByDNI(ctx context.Context, dni string) (*models.Client, error)
	Search(ctx context.Context, term string, limit int) ([]models.Client, error)
	Create(ctx context.Context, client *models.Client) error
	Update(ctx context.Context, client *models.Client) error
	FindWithPendingInstallments(ctx context.Context) ([]ClientInstallments, error)

	CreateType(ctx context.Context, clientType *models.ClientType) error
	ListActiveTypes(ctx context.Context) ([]models.ClientType, error)
}

// ClientInstallments pairs a client with installments still waiting for payment
type ClientInstallments struct {
	Client       models.Client        `json:"client"`
	Installments []models.Installment `json:"installments"`
}

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) FindByID(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).Preload("Type").First(&client, id).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) FindByDNI(ctx context.Context, dni string) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).Where("dni = ?", dni).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// Search matches a DNI prefix or a name prefix, case-insensitively
func (r *clientRepository) Search(ctx context.Context, term string, limit int) ([]models.Client, error) {
	var clients []models.Client
	db := r.db.WithContext(ctx)
	if term != "" {
		like := strings.ToLower(term) + "%"
		db = db.Where("dni LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", like, like, like)
	}
	err := db.Order("last_name ASC, first_name ASC").Limit(limit).Find(&clients).Error
	return clients, err
}

func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *clientRepository) Update(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

// FindWithPendingInstallments returns every client that has at least one
// Pendiente installment, with those installments in schedule order.
func (r *clientRepository) FindWithPendingInstallments(ctx context.Context) ([]ClientInstallments, error) {
	var installments []models.Installment
	err := r.db.WithContext(ctx).
		Joins("Loan").
		Where("installments.status = ?", models.InstallmentStatusPending).
		Order(`"Loan"."client_id" ASC, installments.loan_id ASC, installments.number ASC`).
		Find(&installments).Error
	if err != nil {
		return nil, err
	}
	if len(installments) == 0 {
		return []ClientInstallments{}, nil
	}

	clientIDs := make([]uint, 0)
	byClient := make(map[uint][]models.Installment)
	for _, inst := range installments {
		clientID := inst.Loan.ClientID
		if _, seen := byClient[clientID]; !seen {
			clientIDs = append(clientIDs, clientID)
		}
		inst.Loan = nil
		byClient[clientID] = append(byClient[clientID], inst)
	}

	var clients []models.Client
	if err := r.db.WithContext(ctx).Where("id IN ?", clientIDs).Find(&clients).Error; err != nil {
		return nil, err
	}
	clientByID := make(map[uint]models.Client, len(clients))
	for _, c := range clients {
		clientByID[c.ID] = c
	}

	result := make([]ClientInstallments, 0, len(clientIDs))
	for _, id := range clientIDs {
		result = append(result, ClientInstallments{
			Client:       clientByID[id],
			Installments: byClient[id],
		})
	}
	return result, nil
}

func (r *clientRepository) CreateType(ctx context.Context, clientType *models.ClientType) error {
	return r.db.WithContext(ctx).Create(clientType).Error
}

func (r *clientRepository) ListActiveTypes(ctx context.Context) ([]models.ClientType, error) {
	var types []models.ClientType
	err := r.db.WithContext(ctx).
		Where("status = ?", models.ClientTypeStatusActive).
		Order("name ASC").
		Find(&types).Error
	return types, err
}
