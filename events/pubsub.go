package events

import (
	"sync"

	"github.com/danuartha/delivery-app/models"
	"github.com/danuartha/delivery-app/utils"
)

// Topic names
const (
	TopicPendingOrder = "order.pending"
	TopicCookedOrder  = "order.cooked"
	TopicOrderUpdate  = "order.updated"
)

// PendingOrder adalah payload TopicPendingOrder. OwnerID ikut dikirim supaya
// filter subscriber tidak perlu query tambahan.
type PendingOrder struct {
	Order   models.Order `json:"order"`
	OwnerID uint         `json:"owner_id"`
}

// FilterFunc menentukan apakah satu payload dikirim ke subscriber tertentu.
type FilterFunc func(payload interface{}) bool

// ResolveFunc mengubah bentuk payload sebelum diterima subscriber.
type ResolveFunc func(payload interface{}) interface{}

// Subscription adalah satu pendaftaran pada satu topic. Channel C ditutup
// saat Unsubscribe dipanggil.
type Subscription struct {
	topic   string
	ch      chan interface{}
	filter  FilterFunc
	resolve ResolveFunc
}

// C mengembalikan channel tempat payload diterima.
func (s *Subscription) C() <-chan interface{} {
	return s.ch
}

type SubscribeOption func(*Subscription)

// WithFilter memasang predicate per-subscriber.
func WithFilter(f FilterFunc) SubscribeOption {
	return func(s *Subscription) { s.filter = f }
}

// WithResolve memasang transformasi payload sebelum dikirim.
func WithResolve(r ResolveFunc) SubscribeOption {
	return func(s *Subscription) { s.resolve = r }
}

// Hub menampung semua subscription dan menyiarkan payload per topic.
// Dibuat sekali di main dan dibagikan ke semua komponen (bukan per request).
// Tidak ada persistence: publish tanpa subscriber berarti event hilang.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[*Subscription]struct{}),
	}
}

// Subscribe mendaftarkan subscriber baru pada topic.
func (h *Hub) Subscribe(topic string, opts ...SubscribeOption) *Subscription {
	sub := &Subscription{
		topic: topic,
		ch:    make(chan interface{}, 16),
	}
	for _, opt := range opts {
		opt(sub)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[*Subscription]struct{})
	}
	h.subs[topic][sub] = struct{}{}
	return sub
}

// Unsubscribe melepaskan subscription dan menutup channel-nya.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[sub.topic]; ok {
		if _, ok := set[sub]; ok {
			delete(set, sub)
			close(sub.ch)
		}
	}
}

// Publish mengirim payload ke semua subscriber topic yang lolos filter.
// Pengiriman at-most-once: subscriber yang channel-nya penuh dilewati.
func (h *Hub) Publish(topic string, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs[topic] {
		if sub.filter != nil && !sub.filter(payload) {
			continue
		}
		out := payload
		if sub.resolve != nil {
			out = sub.resolve(payload)
		}
		select {
		case sub.ch <- out:
		default:
			utils.ErrorLogger.Printf("events: dropping %s payload for slow subscriber", topic)
		}
	}
}
