package store

import (
	"context"
	"fmt"
	"strings"
	"time"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO session_events (
		sequence, timestamp, session_id, action, level, focus, topic,
		correct, total, percentage, detail
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UnixMilli(), data.SessionID, data.Action, data.Level, data.Focus, data.Topic,
		data.Correct, data.Total, data.Percentage, data.Detail,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, action string, limit int) ([]SessionEvent, error) {
	var (
		b    strings.Builder
		args []any
	)
	b.WriteString(`SELECT id, sequence, timestamp, session_id, action, level, focus, topic,
		correct, total, percentage, detail FROM session_events`)
	if action != "" {
		b.WriteString(" WHERE action = ?")
		args = append(args, action)
	}
	b.WriteString(" ORDER BY sequence DESC")
	if limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var events []SessionEvent
	for rows.Next() {
		var (
			e  SessionEvent
			ts int64
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.SessionID, &e.Action, &e.Level, &e.Focus,
			&e.Topic, &e.Correct, &e.Total, &e.Percentage, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		events = append(events, e)
	}
	return events, rows.Err()
}
