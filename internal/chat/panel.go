package chat

import (
	"errors"
	"strings"
	"sync"
	"time"

	"iot-dashboard/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrPanelClosed  = errors.New("chat panel is closed")
)

// DefaultReplyDelay matches the typing pause the dashboard always showed
const DefaultReplyDelay = time.Second

// Options optional panel settings
type Options struct {
	ReplyDelay time.Duration
	Now        func() time.Time
	NewID      func() string
	Logger     *zap.Logger
}

// Panel one session's chat window. Bot replies are scheduled with time.AfterFunc and are
// discarded if the panel is closed or reset before they fire.
type Panel struct {
	mu        sync.Mutex
	responder *Responder
	greeting  string
	delay     time.Duration
	now       func() time.Time
	newID     func() string
	logger    *zap.Logger

	open      bool
	minimized bool
	messages  []domain.ChatMessage
	pending   map[uint64]*time.Timer
	nextTimer uint64
	gen       uint64
}

// State snapshot for rendering
type State struct {
	Open      bool                 `json:"isOpen"`
	Minimized bool                 `json:"isMinimized"`
	Pending   int                  `json:"pending"`
	Messages  []domain.ChatMessage `json:"messages"`
}

// NewPanel creates a closed panel holding the greeting
func NewPanel(script Script, opts Options) *Panel {
	if opts.ReplyDelay <= 0 {
		opts.ReplyDelay = DefaultReplyDelay
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.New().String() }
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	p := &Panel{
		responder: NewResponder(script),
		greeting:  script.Greeting,
		delay:     opts.ReplyDelay,
		now:       opts.Now,
		newID:     opts.NewID,
		logger:    opts.Logger,
		pending:   make(map[uint64]*time.Timer),
	}
	p.messages = []domain.ChatMessage{p.botMessage(p.greeting)}
	return p
}

func (p *Panel) botMessage(text string) domain.ChatMessage {
	return domain.ChatMessage{ID: p.newID(), Message: text, IsUser: false, Timestamp: p.now()}
}

// Open shows the panel. Messages are kept between close and open.
func (p *Panel) Open() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = true
}

// Close hides the panel and cancels every pending reply
func (p *Panel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = false
	p.minimized = false
	p.cancelPendingLocked()
}

// Minimize collapses or restores the panel. Pending replies still arrive while minimized.
func (p *Panel) Minimize(minimized bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return ErrPanelClosed
	}
	p.minimized = minimized
	return nil
}

// Send appends the user message and schedules the bot reply
func (p *Panel) Send(text string) (domain.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return domain.ChatMessage{}, ErrEmptyMessage
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return domain.ChatMessage{}, ErrPanelClosed
	}

	msg := domain.ChatMessage{ID: p.newID(), Message: text, IsUser: true, Timestamp: p.now()}
	p.messages = append(p.messages, msg)

	reply := p.responder.Respond(text)
	gen := p.gen
	p.nextTimer++
	key := p.nextTimer
	p.pending[key] = time.AfterFunc(p.delay, func() { p.deliver(gen, key, reply) })
	return msg, nil
}

func (p *Panel) deliver(gen, key uint64, reply string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.pending, key)
	if gen != p.gen || !p.open {
		p.logger.Debug("Dropping chat reply for closed panel", zap.Uint64("generation", gen))
		return
	}
	p.messages = append(p.messages, p.botMessage(reply))
}

// Messages copy of the conversation
func (p *Panel) Messages() []domain.ChatMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.ChatMessage(nil), p.messages...)
}

// State snapshot of the panel
func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return State{
		Open:      p.open,
		Minimized: p.minimized,
		Pending:   len(p.pending),
		Messages:  append([]domain.ChatMessage(nil), p.messages...),
	}
}

// Reset cancels pending replies and starts over from the greeting
func (p *Panel) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelPendingLocked()
	p.messages = []domain.ChatMessage{p.botMessage(p.greeting)}
}

func (p *Panel) cancelPendingLocked() {
	for key, t := range p.pending {
		t.Stop()
		delete(p.pending, key)
	}
	p.gen++
}
