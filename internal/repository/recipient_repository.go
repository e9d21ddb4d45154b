package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/onurcolak/blast-tracker/internal/domain"
)

// Stage order as a MySQL FIELD() list, used to only ever move recipients forward.
const stageOrder = `'sent','received','read','replied','closed'`

// stageColumns holds the timestamp column set when a recipient reaches a stage.
var stageColumns = map[domain.Stage]string{
	domain.StageReceived: "received_at",
	domain.StageRead:     "read_at",
	domain.StageReplied:  "replied_at",
	domain.StageClosed:   "closed_at",
}

// RecipientRepository is the delivery ledger: one row per tracked send.
type RecipientRepository struct {
	db *sqlx.DB
}

func NewRecipientRepository(db *sqlx.DB) *RecipientRepository {
	return &RecipientRepository{db: db}
}

// RecordSent inserts a new recipient at the sent stage. Re-recording the same
// message id only refreshes its phone number and JID.
func (r *RecipientRepository) RecordSent(ctx context.Context, sent *domain.SentMessage) error {
	query := `
		INSERT INTO blast_recipients (message_id, phone_number, jid, stage, sent_at, created_at, updated_at)
		VALUES (?, ?, ?, 'sent', ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON DUPLICATE KEY UPDATE phone_number = VALUES(phone_number), jid = VALUES(jid), updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.ExecContext(ctx, query, sent.MessageID, sent.To, sent.JID, sent.SentAt); err != nil {
		return fmt.Errorf("failed to record sent message: %w", err)
	}

	return nil
}

// AdvanceStage moves a recipient to stage if it is further along the funnel
// than its current one. It reports whether a row changed.
func (r *RecipientRepository) AdvanceStage(
	ctx context.Context,
	messageID string,
	stage domain.Stage,
	status string,
	at time.Time,
) (bool, error) {
	if stage.Rank() < 0 {
		return false, fmt.Errorf("unknown stage %q", stage)
	}

	set := "stage = ?, last_status = ?, updated_at = CURRENT_TIMESTAMP"
	args := []any{stage, status}
	if column, ok := stageColumns[stage]; ok {
		set += fmt.Sprintf(", %s = COALESCE(%s, ?)", column, column)
		args = append(args, at)
	}
	args = append(args, messageID, stage)

	query := fmt.Sprintf(`
		UPDATE blast_recipients
		SET %s
		WHERE message_id = ? AND FIELD(stage, %s) < FIELD(?, %s)
	`, set, stageOrder, stageOrder)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to advance recipient stage: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows > 0, nil
}

// MarkRepliedByJID marks every not yet replied recipient with this JID.
func (r *RecipientRepository) MarkRepliedByJID(ctx context.Context, jid string, at time.Time) (int64, error) {
	query := fmt.Sprintf(`
		UPDATE blast_recipients
		SET stage = 'replied', replied_at = COALESCE(replied_at, ?), updated_at = CURRENT_TIMESTAMP
		WHERE jid = ? AND FIELD(stage, %s) < FIELD('replied', %s)
	`, stageOrder, stageOrder)

	result, err := r.db.ExecContext(ctx, query, at, jid)
	if err != nil {
		return 0, fmt.Errorf("failed to mark recipient replied: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows, nil
}

func (r *RecipientRepository) MarkClosed(ctx context.Context, messageID string, at time.Time) error {
	query := `
		UPDATE blast_recipients
		SET stage = 'closed', closed_at = COALESCE(closed_at, ?), updated_at = CURRENT_TIMESTAMP
		WHERE message_id = ?
	`

	result, err := r.db.ExecContext(ctx, query, at, messageID)
	if err != nil {
		return fmt.Errorf("failed to close recipient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("%w: message id %s", domain.ErrRecipientNotFound, messageID)
	}

	return nil
}

func (r *RecipientRepository) FindByMessageID(ctx context.Context, messageID string) (*domain.Recipient, error) {
	query := `
		SELECT id, message_id, phone_number, jid, stage, last_status, sent_at,
		       received_at, read_at, replied_at, closed_at, created_at, updated_at
		FROM blast_recipients
		WHERE message_id = ?
	`

	var recipient domain.Recipient
	if err := r.db.GetContext(ctx, &recipient, query, messageID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: message id %s", domain.ErrRecipientNotFound, messageID)
		}
		return nil, fmt.Errorf("failed to get recipient: %w", err)
	}

	return &recipient, nil
}

// GetMetrics counts recipients that reached at least each stage, so a read
// message also counts as received.
func (r *RecipientRepository) GetMetrics(ctx context.Context) (domain.BlastMetrics, error) {
	query := `
		SELECT
			COUNT(*) AS sent,
			COALESCE(SUM(CASE WHEN stage IN ('received','read','replied','closed') THEN 1 ELSE 0 END), 0) AS received,
			COALESCE(SUM(CASE WHEN stage IN ('read','replied','closed') THEN 1 ELSE 0 END), 0)            AS read_count,
			COALESCE(SUM(CASE WHEN stage IN ('replied','closed') THEN 1 ELSE 0 END), 0)                   AS replied,
			COALESCE(SUM(CASE WHEN stage = 'closed' THEN 1 ELSE 0 END), 0)                                AS closed
		FROM blast_recipients
	`

	var stats struct {
		Sent     int64 `db:"sent"`
		Received int64 `db:"received"`
		Read     int64 `db:"read_count"`
		Replied  int64 `db:"replied"`
		Closed   int64 `db:"closed"`
	}

	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return domain.BlastMetrics{}, fmt.Errorf("failed to get blast metrics: %w", err)
	}

	return domain.BlastMetrics{
		Sent:     stats.Sent,
		Received: stats.Received,
		Read:     stats.Read,
		Replied:  stats.Replied,
		Closed:   stats.Closed,
	}, nil
}
