package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/catermatch/backend/internal/domain/entities"
	"github.com/catermatch/backend/internal/domain/repositories"
	"github.com/catermatch/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/catermatch/backend/pkg/errors"
	"github.com/doug-martin/goqu/v9"
)

var bidColumns = []interface{}{
	"id", "event_id", "caterer_id", "amount", "message", "status", "created_at",
}

// BidAdapter implements bid persistence in Postgres.
type BidAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBidAdapter creates a new bid adapter.
func NewBidAdapter(client *postgres.Client) repositories.BidRepository {
	return &BidAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new bid row.
func (a *BidAdapter) Create(ctx context.Context, bid *entities.Bid) error {
	if bid == nil {
		return apperrors.NewInternalError("bid is nil", fmt.Errorf("bid is nil"))
	}

	record := goqu.Record{
		"id":         bid.ID,
		"event_id":   bid.EventID,
		"caterer_id": bid.CatererID,
		"amount":     bid.Amount,
		"message":    sql.NullString{String: bid.Message, Valid: bid.Message != ""},
		"status":     string(bid.Status),
		"created_at": bid.CreatedAt,
	}

	query, args, err := a.db.Insert("bids").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build bid insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create bid", err)
	}

	return nil
}

// GetByID fetches a bid by its id.
func (a *BidAdapter) GetByID(ctx context.Context, id string) (*entities.Bid, error) {
	query, args, err := a.db.Select(bidColumns...).From("bids").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build bid select query", err)
	}

	bid, err := scanBid(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("bid not found: %s", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get bid", err)
	}

	return bid, nil
}

// ListByEvent returns all bids on an event, newest first, joined with the
// bidding caterer's public summary.
func (a *BidAdapter) ListByEvent(ctx context.Context, eventID string) ([]*entities.Bid, error) {
	query, args, err := a.db.Select(
		goqu.I("b.id"), goqu.I("b.event_id"), goqu.I("b.caterer_id"),
		goqu.I("b.amount"), goqu.I("b.message"), goqu.I("b.status"), goqu.I("b.created_at"),
		goqu.I("p.display_name"), goqu.I("p.company_name"), goqu.I("p.logo_url"),
	).From(goqu.T("bids").As("b")).
		Join(goqu.T("profiles").As("p"), goqu.On(goqu.Ex{"p.id": goqu.I("b.caterer_id")})).
		Where(goqu.Ex{"b.event_id": eventID}).
		Order(goqu.I("b.created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build bid list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list bids", err)
	}
	defer rows.Close()

	bids := []*entities.Bid{}
	for rows.Next() {
		var (
			bid         entities.Bid
			message     sql.NullString
			displayName sql.NullString
			companyName sql.NullString
			logoURL     sql.NullString
		)
		err := rows.Scan(
			&bid.ID,
			&bid.EventID,
			&bid.CatererID,
			&bid.Amount,
			&message,
			&bid.Status,
			&bid.CreatedAt,
			&displayName,
			&companyName,
			&logoURL,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan bid", err)
		}
		bid.Message = message.String
		bid.Caterer = &entities.CatererSummary{
			ID:          bid.CatererID,
			DisplayName: displayName.String,
			CompanyName: companyName.String,
			LogoURL:     logoURL.String,
		}
		bids = append(bids, &bid)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate bids", err)
	}

	return bids, nil
}

// ListByCaterer returns all bids a caterer has placed, newest first.
func (a *BidAdapter) ListByCaterer(ctx context.Context, catererID string) ([]*entities.Bid, error) {
	query, args, err := a.db.Select(bidColumns...).From("bids").
		Where(goqu.Ex{"caterer_id": catererID}).
		Order(goqu.C("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build bid list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list bids", err)
	}
	defer rows.Close()

	bids := []*entities.Bid{}
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan bid", err)
		}
		bids = append(bids, bid)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate bids", err)
	}

	return bids, nil
}

// UpdateStatus moves a bid to a new lifecycle status.
func (a *BidAdapter) UpdateStatus(ctx context.Context, id string, status entities.BidStatus) error {
	query, args, err := a.db.Update("bids").
		Set(goqu.Record{"status": string(status)}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build bid status update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update bid status", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to check update result", err)
	}
	if rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("bid not found: %s", id))
	}

	return nil
}

func scanBid(row rowScanner) (*entities.Bid, error) {
	var (
		bid     entities.Bid
		message sql.NullString
	)

	err := row.Scan(
		&bid.ID,
		&bid.EventID,
		&bid.CatererID,
		&bid.Amount,
		&message,
		&bid.Status,
		&bid.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	bid.Message = message.String
	return &bid, nil
}
