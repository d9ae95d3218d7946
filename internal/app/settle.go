package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okian/owarai/internal/adapters/mq/queue"
	"github.com/okian/owarai/internal/adapters/mq/worker"
	"github.com/okian/owarai/internal/domain/model"
	"github.com/okian/owarai/internal/domain/prediction"
	"github.com/okian/owarai/internal/domain/types"
	"github.com/okian/owarai/pkg/logger"
	"github.com/okian/owarai/pkg/metrics"
)

const maxEnqueueBackoff = 50 * time.Millisecond

// Settle pays out the stored predictions of snap. A prediction is paid at
// most once: records flagged PaidOut and ids already in the ledger are
// reported as duplicates. Records without an id are invalid. Predictions for
// events that have not taken place yet, or whose results cannot decide every
// entry, are reported pending and may be settled by a later run. Reports come back in
// the order of snap.Predictions.
func (s *Service) Settle(ctx context.Context, snap *model.Snapshot) ([]types.Settlement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, ErrNilSnapshot
	}
	s.mu.Lock()
	stopped := s.stopped
	s.mu.Unlock()
	if stopped {
		return nil, ErrStopped
	}

	b := &batch{
		svc:     s,
		today:   s.aggregator.Today(),
		events:  model.EventsByID(snap.Events),
		names:   model.NameIndex(snap.Performers),
		byEvent: make(map[string][]model.Performance),
		out:     make([]types.Settlement, len(snap.Predictions)),
	}
	for _, p := range snap.Performances {
		b.byEvent[p.EventID] = append(b.byEvent[p.EventID], p)
	}

	q := queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	pool := worker.NewPool(s.workerCount, q, b, worker.SinkFunc(s.report))
	pool.Start(ctx)

	s.logger.Info(ctx, "settlement started",
		logger.String("snapshot", snap.ID),
		logger.Int("predictions", len(snap.Predictions)),
		logger.Int("workers", pool.Size()),
	)

	for i := range snap.Predictions {
		rec := snap.Predictions[i]
		if st, done := b.precheck(rec); done {
			b.out[i] = st
			s.report(ctx, st)
			continue
		}
		if !s.enqueue(ctx, q, queue.Job{Record: rec, Seq: i}) {
			st := newSettlement(rec, types.StatusDeferred, "settlement queue unavailable")
			b.out[i] = st
			s.report(ctx, st)
		}
	}

	if err := pool.Shutdown(ctx); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "settlement finished", logger.String("snapshot", snap.ID))
	return b.out, nil
}

// enqueue retries while the queue is full.
func (s *Service) enqueue(ctx context.Context, q queue.Queue, j queue.Job) bool { //nolint:gocritic // hugeParam: jobs travel by value over the channel
	backoff := time.Millisecond
	for {
		if q.Enqueue(ctx, j) {
			return true
		}
		if q.IsClosed() || ctx.Err() != nil {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(backoff):
		}
		if backoff < maxEnqueueBackoff {
			backoff *= 2
		}
	}
}

func (s *Service) report(ctx context.Context, st types.Settlement) { //nolint:gocritic // hugeParam: matches worker.SinkFunc
	metrics.RecordSettlement(string(st.Status))
	if st.Status == types.StatusSettled {
		metrics.RecordPayout(st.Payout.InexactFloat64())
	}
	s.logger.Debug(ctx, "prediction settled",
		logger.String("prediction_id", st.PredictionID),
		logger.String("status", string(st.Status)),
		logger.String("payout", st.Payout.String()),
	)
}

// batch settles the predictions of one snapshot. Each job writes only its
// own slot of out.
type batch struct {
	svc     *Service
	today   model.Date
	events  map[string]model.Event
	names   map[string]string
	byEvent map[string][]model.Performance
	out     []types.Settlement
}

func (b *batch) precheck(rec model.StoredPrediction) (types.Settlement, bool) { //nolint:gocritic // hugeParam: records are copied out of the snapshot
	if rec.ID == "" {
		return newSettlement(rec, types.StatusInvalid, "prediction has no id"), true
	}
	ev, ok := b.events[rec.EventID]
	if !ok {
		return newSettlement(rec, types.StatusSkipped, "event not in snapshot"), true
	}
	if rec.PaidOut {
		return newSettlement(rec, types.StatusDuplicate, "already paid out"), true
	}
	if !ev.IsPastOn(b.today) {
		return newSettlement(rec, types.StatusPending, "event has not taken place"), true
	}
	return types.Settlement{}, false
}

// Settle implements worker.Settler.
func (b *batch) Settle(ctx context.Context, j queue.Job) (types.Settlement, error) { //nolint:gocritic // hugeParam: jobs travel by value over the channel
	st, err := b.settle(ctx, j.Record)
	b.out[j.Seq] = st
	return st, err
}

func (b *batch) settle(ctx context.Context, rec model.StoredPrediction) (types.Settlement, error) { //nolint:gocritic // hugeParam: records are copied out of the snapshot
	payload := prediction.DecodeValue(rec.Predictions)
	if !payload.Valid {
		b.svc.malformed(ctx, &rec, payload.Err)
		return newSettlement(rec, types.StatusInvalid, payload.Err.Error()), nil
	}

	perfs := b.byEvent[rec.EventID]
	standings := prediction.Standings(perfs)
	for _, entry := range payload.Entries {
		if !prediction.Determined(entry.PredictionType, standings) {
			return newSettlement(rec, types.StatusPending, "event has no final results"), nil
		}
	}

	if b.svc.ledger.SeenAndRecord(ctx, rec.ID) {
		return newSettlement(rec, types.StatusDuplicate, "already settled"), nil
	}
	if err := ctx.Err(); err != nil {
		b.svc.ledger.Unrecord(ctx, rec.ID)
		return newSettlement(rec, types.StatusDeferred, "settlement cancelled"), fmt.Errorf("%w: %w", ErrSettlementCancelled, err)
	}

	st := newSettlement(rec, types.StatusSettled, "")
	st.Results = make([]prediction.Result, 0, len(payload.Entries))
	for _, entry := range payload.Entries {
		res := b.svc.evaluator.Evaluate(entry, perfs, b.names)
		metrics.RecordPredictionEvaluated(string(res.PredictionType), res.IsWon)
		st.Results = append(st.Results, res)
		st.Payout = st.Payout.Add(res.Payout)
	}
	return st, nil
}

func newSettlement(rec model.StoredPrediction, status types.SettlementStatus, reason string) types.Settlement { //nolint:gocritic // hugeParam: records are copied out of the snapshot
	return types.Settlement{
		PredictionID: rec.ID,
		UserID:       rec.UserID,
		EventID:      rec.EventID,
		Status:       status,
		Payout:       decimal.Zero,
		Reason:       reason,
	}
}
