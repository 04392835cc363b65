package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sjperalta/prestamos-api/internal/models"
	"github.com/sjperalta/prestamos-api/internal/repository"
)

type ClientService struct {
	repo     repository.ClientRepository
	auditSvc *AuditService
}

func NewClientService(repo repository.ClientRepository, auditSvc *AuditService) *ClientService {
	return &ClientService{repo: repo, auditSvc: auditSvc}
}

// Create registers a client. The DNI must be unique.
func (s *ClientService) Create(ctx context.Context, client *models.Client, actorID uint, ip, userAgent string) (*models.Client, error) {
	client.DNI = strings.TrimSpace(client.DNI)
	client.FirstName = strings.TrimSpace(client.FirstName)
	client.LastName = strings.TrimSpace(client.LastName)
	if client.DNI == "" || client.FirstName == "" || client.LastName == "" {
		return nil, fmt.Errorf("%w: dni, nombre y apellidos son obligatorios", ErrValidation)
	}

	existing, err := s.repo.FindByDNI(ctx, client.DNI)
	if err != nil && !isNotFound(err) {
		return nil, storageError("buscar cliente", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("dni %s: %w", client.DNI, ErrDuplicate)
	}

	client.ID = 0
	client.UserID = actorID
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, storageError("crear cliente", err)
	}

	if s.auditSvc != nil {
		s.auditSvc.Record(ctx, actorID, models.AuditActionCreate, models.AuditEntityClient, client.ID,
			fmt.Sprintf("Cliente %s (%s)", client.FullName(), client.DNI), ip, userAgent)
	}
	return client, nil
}

func (s *ClientService) FindByID(ctx context.Context, id uint) (*models.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError("cliente", id, err)
	}
	return client, nil
}

// Search lists clients whose DNI or name starts with term
func (s *ClientService) Search(ctx context.Context, term string, limit int) ([]models.Client, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	clients, err := s.repo.Search(ctx, strings.TrimSpace(term), limit)
	if err != nil {
		return nil, storageError("buscar clientes", err)
	}
	return clients, nil
}

// CreateType adds an active client category
func (s *ClientService) CreateType(ctx context.Context, name string, actorID uint) (*models.ClientType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", ErrValidation)
	}
	ct := &models.ClientType{Name: name, Status: models.ClientTypeStatusActive, UserID: actorID}
	if err := s.repo.CreateType(ctx, ct); err != nil {
		return nil, storageError("crear tipo de cliente", err)
	}
	return ct, nil
}

func (s *ClientService) ListTypes(ctx context.Context) ([]models.ClientType, error) {
	types, err := s.repo.ListActiveTypes(ctx)
	if err != nil {
		return nil, storageError("listar tipos de cliente", err)
	}
	return types, nil
}
