package notifier

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/flossiendabambi/alx-project-nexus/internal/domain"
	"github.com/flossiendabambi/alx-project-nexus/internal/repository"
	"github.com/google/uuid"
)

type OrderGetter interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
}

// Poller drains the notification outbox out-of-band from the request cycle:
// order placement only enqueues a row, delivery happens here.
type Poller struct {
	tick      time.Duration
	batchSize int
	repo      repository.NotificationRepo
	orders    OrderGetter
	publisher EmailPublisher
}

func NewPoller(repo repository.NotificationRepo, orders OrderGetter, publisher EmailPublisher) *Poller {
	return &Poller{
		tick:      time.Second,
		batchSize: 100,
		repo:      repo,
		orders:    orders,
		publisher: publisher,
	}
}

func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.processPending(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Poller) processPending(ctx context.Context) {
	notifications, err := p.repo.GetPendingNotifications(ctx, p.batchSize)
	if err != nil {
		log.Printf("failed to fetch pending notifications: %v", err)
		return
	}

	for _, n := range notifications {
		if err := p.dispatch(ctx, n); err != nil {
			// Delivery faults are logged and the row stays pending for the
			// next tick; only a vanished order is terminal.
			log.Printf("failed to dispatch notification id = %v for order %v: %v", n.ID, n.OrderID, err)
		}
	}
}

func (p *Poller) dispatch(ctx context.Context, n *repository.Notification) error {
	order, err := p.orders.GetOrder(ctx, n.OrderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		// A stale order id is a caller bug, not a transient fault. Mark the
		// row failed so it is never retried.
		log.Printf("order %v not found for notification id = %v, marking failed", n.OrderID, n.ID)
		if errMark := p.repo.MarkNotificationFailed(ctx, n.ID); errMark != nil {
			return errMark
		}
		return nil
	}
	if err != nil {
		return err
	}

	email, err := renderConfirmation(order)
	if err != nil {
		return err
	}

	if err := p.publisher.Publish(ctx, order.ID.String(), email); err != nil {
		return err
	}

	return p.repo.MarkNotificationSent(ctx, n.ID)
}
