package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"servit/internal/domain/repairticket"
	"servit/internal/infrastructure/persistence/mappers"
	"servit/internal/infrastructure/persistence/models"
	"servit/internal/shared/db"
	apperrors "servit/internal/shared/errors"
)

type RepairTicketRepository struct {
	db     *gorm.DB
	mapper mappers.RepairTicketMapper
}

func NewRepairTicketRepository(database *gorm.DB) *RepairTicketRepository {
	return &RepairTicketRepository{
		db:     database,
		mapper: mappers.NewRepairTicketMapper(),
	}
}

func (r *RepairTicketRepository) Create(ctx context.Context, ticket *repairticket.RepairTicket) error {
	model := r.mapper.ToModel(ticket)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError(
				fmt.Sprintf("ticket number %s is already taken", ticket.TicketNumber()))
		}
		return fmt.Errorf("failed to create repair ticket: %w", err)
	}

	return ticket.SetID(model.ID)
}

func (r *RepairTicketRepository) Update(ctx context.Context, ticket *repairticket.RepairTicket) error {
	model := r.mapper.ToModel(ticket)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.RepairTicketModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update repair ticket: %w", result.Error)
	}

	return nil
}

func (r *RepairTicketRepository) FindByID(ctx context.Context, id uint) (*repairticket.RepairTicket, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *RepairTicketRepository) FindByTicketNumber(ctx context.Context, ticketNumber string) (*repairticket.RepairTicket, error) {
	return r.findOne(ctx, "ticket_number = ?", ticketNumber)
}

func (r *RepairTicketRepository) findOne(ctx context.Context, query string, args ...any) (*repairticket.RepairTicket, error) {
	var model models.RepairTicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where(query, args...).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("repair ticket not found")
		}
		return nil, fmt.Errorf("failed to find repair ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *RepairTicketRepository) List(ctx context.Context, filter repairticket.Filter) ([]*repairticket.RepairTicket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.RepairTicketModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Technician != nil {
		query = query.Where("technician = ?", *filter.Technician)
	}
	if filter.CustomerName != nil {
		query = query.Where("customer_name LIKE ?", "%"+*filter.CustomerName+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count repair tickets: %w", err)
	}

	query = query.Order("created_at DESC")
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var ticketModels []*models.RepairTicketModel
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list repair tickets: %w", err)
	}

	tickets, err := r.mapper.ToDomainList(ticketModels)
	if err != nil {
		return nil, 0, err
	}

	return tickets, total, nil
}

func (r *RepairTicketRepository) AppendHistory(ctx context.Context, entry *repairticket.StatusHistoryEntry) error {
	model, err := r.mapper.HistoryToModel(entry)
	if err != nil {
		return err
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append status history: %w", err)
	}

	return entry.SetID(model.ID)
}

func (r *RepairTicketRepository) FindHistory(ctx context.Context, ticketID uint) ([]*repairticket.StatusHistoryEntry, error) {
	var historyModels []*models.TicketStatusHistoryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC, id ASC").
		Find(&historyModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load status history: %w", err)
	}

	return r.mapper.HistoryToDomainList(historyModels)
}
