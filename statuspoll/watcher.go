// Package statuspoll watches an order after the customer was redirected to
// the payment provider, waiting for the webhook to flip the order to paid.
// One immediate check, periodic re-polls, and a wall-clock timeout with no
// automatic retry beyond it.
package statuspoll

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"lulukitchen/models"
)

type State string

const (
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateTimeout State = "timeout"
)

const (
	defaultInterval = 3 * time.Second
	defaultTimeout  = 45 * time.Second
)

type Watcher struct {
	client   *http.Client
	baseURL  string
	orderID  uint
	interval time.Duration
	timeout  time.Duration

	// onPaid runs once when the paid status is observed; the storefront
	// clears the cart here.
	onPaid func(order *models.Order)

	mu    sync.Mutex
	state State
	order *models.Order
}

func New(baseURL string, orderID uint, onPaid func(order *models.Order)) *Watcher {
	return &Watcher{
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  baseURL,
		orderID:  orderID,
		interval: defaultInterval,
		timeout:  defaultTimeout,
		onPaid:   onPaid,
		state:    StateLoading,
	}
}

// NewWithTimings is the test constructor.
func NewWithTimings(client *http.Client, baseURL string, orderID uint, interval, timeout time.Duration, onPaid func(order *models.Order)) *Watcher {
	return &Watcher{
		client:   client,
		baseURL:  baseURL,
		orderID:  orderID,
		interval: interval,
		timeout:  timeout,
		onPaid:   onPaid,
		state:    StateLoading,
	}
}

func (w *Watcher) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Watcher) Order() *models.Order {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.order
}

// fetchOrder performs one poll against the order endpoint.
func (w *Watcher) fetchOrder(ctx context.Context) (*models.Order, error) {
	u := fmt.Sprintf("%s/api/orders/%d", w.baseURL, w.orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("order endpoint returned %d", resp.StatusCode)
	}
	var order models.Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Check polls once and reports whether the order is paid. Transient poll
// errors are swallowed; the next tick retries anyway.
func (w *Watcher) Check(ctx context.Context) bool {
	order, err := w.fetchOrder(ctx)
	if err != nil || order == nil {
		return false
	}
	if order.PaymentStatus != models.PaymentStatusPaid {
		return false
	}

	w.mu.Lock()
	already := w.state == StateSuccess
	w.state = StateSuccess
	w.order = order
	w.mu.Unlock()

	if !already && w.onPaid != nil {
		w.onPaid(order)
	}
	return true
}

// Wait blocks until the order is paid or the timeout elapses: an immediate
// check, then a re-poll every interval.
func (w *Watcher) Wait(ctx context.Context) State {
	if w.Check(ctx) {
		return StateSuccess
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	deadline := time.NewTimer(w.timeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return w.markTimeout()
		case <-deadline.C:
			return w.markTimeout()
		case <-ticker.C:
			if w.Check(ctx) {
				return StateSuccess
			}
		}
	}
}

func (w *Watcher) markTimeout() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateLoading {
		w.state = StateTimeout
	}
	return w.state
}

// ReCheck is the manual retry offered after a timeout; it resets to loading
// and polls once.
func (w *Watcher) ReCheck(ctx context.Context) State {
	w.mu.Lock()
	if w.state == StateTimeout {
		w.state = StateLoading
	}
	w.mu.Unlock()

	if w.Check(ctx) {
		return StateSuccess
	}
	return w.markTimeout()
}

// EscalationLink is the WhatsApp handoff shown when the timeout hit and the
// customer wants a human.
func (w *Watcher) EscalationLink(restaurantPhone string) string {
	text := fmt.Sprintf("שילמתי על הזמנה מספר %d אבל לא קיבלתי אישור", w.orderID)
	return fmt.Sprintf("https://wa.me/%s?text=%s", restaurantPhone, url.QueryEscape(text))
}
