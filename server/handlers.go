package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/etnz/cashbook"
	"github.com/etnz/cashbook/date"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Store loads and saves the book served by a Handler.
type Store interface {
	Load() (*cashbook.Book, error)
	Save(*cashbook.Book) error
}

// memory keeps the book in memory only.
type memory struct{}

func (memory) Load() (*cashbook.Book, error) { return nil, errors.New("the book is kept in memory only") }
func (memory) Save(*cashbook.Book) error     { return nil }

// Handler adapts a Book to HTTP. Every accepted write is saved before the
// response is sent.
type Handler struct {
	book   *cashbook.Book
	store  Store
	logger *zap.Logger

	mu sync.RWMutex // orders the insert and save pairs, guards book
}

// NewHandler constructs the HTTP handler adapter. store saves the book after
// each accepted write, it may be nil for a book kept in memory.
func NewHandler(book *cashbook.Book, store Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = memory{}
	}
	return &Handler{book: book, store: store, logger: logger}
}

// current returns the book to read from.
func (h *Handler) current() *cashbook.Book {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.book
}

// write runs insert on the book then saves it. When the save fails the book
// is reloaded from the store, so that the records served are the saved ones.
func (h *Handler) write(insert func(*cashbook.Book) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := insert(h.book); err != nil {
		return err
	}
	err := h.store.Save(h.book)
	if err == nil {
		return nil
	}
	h.logger.Error("failed saving book", zap.Error(err))
	saved, lerr := h.store.Load()
	if lerr != nil {
		h.logger.Error("failed reloading book, unsaved records are still served", zap.Error(lerr))
		return err
	}
	h.book = saved
	return err
}

// knows checks that label is a known category of kind.
func (h *Handler) knows(kind cashbook.CategoryKind, label string) error {
	if h.current().HasCategory(kind, label) {
		return nil
	}
	return fmt.Errorf("%w: unknown %s category %q, see GET /api/categories/%s", cashbook.ErrInvalidValue, kind, label, kind)
}

// fail maps a book error to its HTTP status.
func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, cashbook.ErrInvalidValue):
		status = http.StatusBadRequest
	case errors.Is(err, cashbook.ErrDuplicateKey):
		status = http.StatusConflict
	default:
		h.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	h.logger.Warn("invalid request", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// AddClosing records a daily closing.
func (h *Handler) AddClosing(c *gin.Context) {
	var req closingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	closing, err := req.closing()
	if err != nil {
		h.badRequest(c, err)
		return
	}
	err = h.write(func(b *cashbook.Book) (err error) {
		closing, err = b.AddDailyClosing(closing)
		return err
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, closing)
}

// GetClosing returns the closing of a day with its reconciliation.
func (h *Handler) GetClosing(c *gin.Context) {
	day, err := date.Parse(c.Param("date"))
	if err != nil {
		h.badRequest(c, err)
		return
	}
	closing, ok := h.current().Closing(day)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no closing on " + day.String()})
		return
	}
	check := closing.Check()
	c.JSON(http.StatusOK, gin.H{
		"closing":     closing,
		"theoretical": check.Theoretical,
		"discrepancy": check.Discrepancy,
		"short":       check.IsShort(),
	})
}

// AddPurchase records a stock purchase.
func (h *Handler) AddPurchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	p, err := req.purchase()
	if err != nil {
		h.badRequest(c, err)
		return
	}
	if err := h.knows(cashbook.StockCategory, p.Category); err != nil {
		h.fail(c, err)
		return
	}
	var dup bool
	err = h.write(func(b *cashbook.Book) (err error) {
		p, dup, err = b.AddStockPurchase(p)
		return err
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"purchase": p, "possibleDuplicate": dup})
}

// ImportPurchases records a batch of stock purchases, skipping the ones
// already recorded.
func (h *Handler) ImportPurchases(c *gin.Context) {
	var reqs []purchaseRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		h.badRequest(c, err)
		return
	}
	rows := make([]cashbook.StockPurchase, len(reqs))
	for i, req := range reqs {
		p, err := req.purchase()
		if err != nil {
			h.badRequest(c, err)
			return
		}
		if err := h.knows(cashbook.StockCategory, p.Category); err != nil {
			h.fail(c, fmt.Errorf("row %d: %w", i+1, err))
			return
		}
		rows[i] = p
	}
	var res cashbook.ImportResult
	err := h.write(func(b *cashbook.Book) (err error) {
		res, err = b.ImportStockPurchases(rows)
		return err
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// AddFixedCost records the fixed cost of a concept for a month.
func (h *Handler) AddFixedCost(c *gin.Context) {
	var req fixedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	f, err := req.fixedCost()
	if err != nil {
		h.badRequest(c, err)
		return
	}
	if err := h.knows(cashbook.FixedConcept, f.Concept); err != nil {
		h.fail(c, err)
		return
	}
	err = h.write(func(b *cashbook.Book) (err error) {
		f, err = b.AddFixedCost(f)
		return err
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// GetCategories lists the labels of a kind.
func (h *Handler) GetCategories(c *gin.Context) {
	kind, err := cashbook.ParseCategoryKind(c.Param("kind"))
	if err != nil {
		h.badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"kind": kind, "labels": h.current().Categories(kind)})
}

// AddCategory adds a label. A known label is not an error, the response
// just tells that nothing was created.
func (h *Handler) AddCategory(c *gin.Context) {
	kind, err := cashbook.ParseCategoryKind(c.Param("kind"))
	if err != nil {
		h.badRequest(c, err)
		return
	}
	var req labelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	err = h.write(func(b *cashbook.Book) error { return b.AddCategory(kind, req.Label) })
	switch {
	case errors.Is(err, cashbook.ErrAlreadyExists):
		c.JSON(http.StatusOK, gin.H{"created": false})
	case err != nil:
		h.fail(c, err)
	default:
		c.JSON(http.StatusCreated, gin.H{"created": true})
	}
}

// GetMonths lists the months having records, oldest first.
func (h *Handler) GetMonths(c *gin.Context) {
	keys := h.current().MonthKeys()
	if keys == nil {
		keys = []date.Month{}
	}
	c.JSON(http.StatusOK, keys)
}

// GetMonth returns the summary of a month.
func (h *Handler) GetMonth(c *gin.Context) {
	m, err := date.ParseMonth(c.Param("month"))
	if err != nil {
		h.badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.current().MonthlySummary(m))
}

// GetSummary returns the annual summary, of every month or of the year
// given in the query.
func (h *Handler) GetSummary(c *gin.Context) {
	year := c.Query("year")
	if year == "" {
		c.JSON(http.StatusOK, h.current().AnnualSummary())
		return
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		h.badRequest(c, errors.New("year must be a number, got "+strconv.Quote(year)))
		return
	}
	c.JSON(http.StatusOK, h.current().YearSummary(y))
}
