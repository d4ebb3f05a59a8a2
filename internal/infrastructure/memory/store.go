// Package memory menyediakan implementasi in-memory seluruh port
// persistensi plus TxRunner dengan semantik rollback sungguhan
// (copy-on-begin, buang saat error). Dipakai test dan demo tanpa DB.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amanahtour/gudang-api/internal/application/ledger"
	"github.com/amanahtour/gudang-api/internal/application/recorder"
	"github.com/amanahtour/gudang-api/internal/domain/entity"
	"github.com/amanahtour/gudang-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*Store)(nil)
var _ recorder.TxRunner = (*Store)(nil)

// Store menyimpan seluruh state di memori. Run/RunRecorder bekerja pada
// salinan state; salinan dipromosikan menjadi state aktif hanya bila
// callback sukses, meniru commit/rollback transaksi relasional.
type Store struct {
	mu    sync.Mutex
	state *state
}

type state struct {
	items      map[string]*entity.Item
	warehouses map[string]*entity.Warehouse
	movements  []*entity.StockMovement
	stocks     map[string]*entity.WarehouseStock // key: itemID|warehouseID
	transfers  map[string]*entity.Transfer
	incomings  map[string]*entity.IncomingReceipt
	outgoings  map[string]*entity.OutgoingIssue
	users      map[string]*entity.User
}

func newState() *state {
	return &state{
		items:      map[string]*entity.Item{},
		warehouses: map[string]*entity.Warehouse{},
		stocks:     map[string]*entity.WarehouseStock{},
		transfers:  map[string]*entity.Transfer{},
		incomings:  map[string]*entity.IncomingReceipt{},
		outgoings:  map[string]*entity.OutgoingIssue{},
		users:      map[string]*entity.User{},
	}
}

func stockKey(itemID, warehouseID string) string { return itemID + "|" + warehouseID }

// New membuat store kosong.
func New() *Store {
	return &Store{state: newState()}
}

func (st *state) clone() *state {
	c := newState()
	for k, v := range st.items {
		cp := *v
		c.items[k] = &cp
	}
	for k, v := range st.warehouses {
		cp := *v
		c.warehouses[k] = &cp
	}
	for _, m := range st.movements {
		cp := *m
		c.movements = append(c.movements, &cp)
	}
	for k, v := range st.stocks {
		cp := *v
		c.stocks[k] = &cp
	}
	for k, v := range st.transfers {
		cp := *v
		c.transfers[k] = &cp
	}
	for k, v := range st.incomings {
		cp := *v
		c.incomings[k] = &cp
	}
	for k, v := range st.outgoings {
		cp := *v
		c.outgoings[k] = &cp
	}
	for k, v := range st.users {
		cp := *v
		c.users[k] = &cp
	}
	return c
}

// Run menjalankan fn pada salinan state; commit bila sukses.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.WarehouseStockRepository,
	itemRepo repository.ItemRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.state.clone()
	if err := fn(&movementRepo{work}, &stockRepo{work}, &itemRepo{work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

// RunRecorder seperti Run plus repo record bisnis.
func (s *Store) RunRecorder(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.WarehouseStockRepository,
	itemRepo repository.ItemRepository,
	incomingRepo repository.IncomingRepository,
	outgoingRepo repository.OutgoingRepository,
	transferRepo repository.TransferRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.state.clone()
	err := fn(&movementRepo{work}, &stockRepo{work}, &itemRepo{work},
		&incomingRepo{work}, &outgoingRepo{work}, &transferRepo{work})
	if err != nil {
		return err
	}
	s.state = work
	return nil
}

// ──────────────────────────────────────────────────────────────────────
// Akses non-transaksional (padanan repo yang terikat pool)
// ──────────────────────────────────────────────────────────────────────

// Items repo barang di luar transaksi.
func (s *Store) Items() repository.ItemRepository { return &lockedItemRepo{s} }

// Warehouses repo gudang di luar transaksi.
func (s *Store) Warehouses() repository.WarehouseRepository { return &warehouseRepo{s} }

// Users repo user di luar transaksi.
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

// Stocks repo saldo stok di luar transaksi (read-only yang wajar).
func (s *Store) Stocks() repository.WarehouseStockRepository { return &lockedStockRepo{s} }

// Movements repo movement di luar transaksi.
func (s *Store) Movements() repository.MovementRepository { return &lockedMovementRepo{s} }

// Transfers repo transfer di luar transaksi.
func (s *Store) Transfers() repository.TransferRepository { return &lockedTransferRepo{s} }

// Incomings repo barang masuk di luar transaksi.
func (s *Store) Incomings() repository.IncomingRepository { return &lockedIncomingRepo{s} }

// Outgoings repo barang keluar di luar transaksi.
func (s *Store) Outgoings() repository.OutgoingRepository { return &lockedOutgoingRepo{s} }

// Summaries accessor ringkasan stok di luar transaksi.
func (s *Store) Summaries() repository.SummaryRepository { return &summaryRepo{s} }

// SeedItem menambahkan barang master (untuk setup test/demo).
func (s *Store) SeedItem(item *entity.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *item
	s.state.items[item.ID] = &cp
}

// SeedWarehouse menambahkan gudang.
func (s *Store) SeedWarehouse(w *entity.Warehouse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *w
	s.state.warehouses[w.ID] = &cp
}

// SeedUser menambahkan user.
func (s *Store) SeedUser(u *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.state.users[u.ID] = &cp
}

// ──────────────────────────────────────────────────────────────────────
// Repo yang terikat ke satu state kerja (dalam transaksi)
// ──────────────────────────────────────────────────────────────────────

type itemRepo struct{ st *state }

func (r *itemRepo) GetByID(id string) (*entity.Item, error) {
	if it, ok := r.st.items[id]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

// GetForUpdate sama dengan GetByID: mutex store sudah menserialisasi
// seluruh transaksi, jadi tidak ada baris yang perlu dikunci terpisah.
func (r *itemRepo) GetForUpdate(id string) (*entity.Item, error) {
	return r.GetByID(id)
}

func (r *itemRepo) List() ([]*entity.Item, error) {
	var list []*entity.Item
	for _, it := range r.st.items {
		cp := *it
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *itemRepo) ListBelowMinimum() ([]*entity.Item, error) {
	var list []*entity.Item
	for _, it := range r.st.items {
		if it.MinimumQuantity.GreaterThan(decimal.Zero) && it.OnHandQuantity.LessThanOrEqual(it.MinimumQuantity) {
			cp := *it
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		ri := list[i].OnHandQuantity.Div(maxOne(list[i].MinimumQuantity))
		rj := list[j].OnHandQuantity.Div(maxOne(list[j].MinimumQuantity))
		return ri.LessThan(rj)
	})
	return list, nil
}

func maxOne(d decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if d.LessThan(one) {
		return one
	}
	return d
}

func (r *itemRepo) UpdateOnHand(id string, quantity decimal.Decimal) error {
	it, ok := r.st.items[id]
	if !ok {
		return errNotFound("barang", id)
	}
	it.OnHandQuantity = quantity
	it.UpdatedAt = time.Now()
	return nil
}

type stockRepo struct{ st *state }

func (r *stockRepo) Get(itemID, warehouseID string) (*entity.WarehouseStock, error) {
	if s, ok := r.st.stocks[stockKey(itemID, warehouseID)]; ok {
		cp := *s
		return &cp, nil
	}
	return &entity.WarehouseStock{ItemID: itemID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
}

// GetForUpdate: state kerja sudah eksklusif per transaksi, jadi sama
// dengan Get.
func (r *stockRepo) GetForUpdate(itemID, warehouseID string) (*entity.WarehouseStock, error) {
	return r.Get(itemID, warehouseID)
}

func (r *stockRepo) Upsert(stock *entity.WarehouseStock) error {
	cp := *stock
	cp.UpdatedAt = time.Now()
	r.st.stocks[stockKey(stock.ItemID, stock.WarehouseID)] = &cp
	return nil
}

func (r *stockRepo) SumByItem(itemID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range r.st.stocks {
		if s.ItemID == itemID {
			total = total.Add(s.Quantity)
		}
	}
	return total, nil
}

func (r *stockRepo) ListByItem(itemID string) ([]*entity.WarehouseStock, error) {
	var list []*entity.WarehouseStock
	for _, s := range r.st.stocks {
		if s.ItemID == itemID {
			cp := *s
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].WarehouseID < list[j].WarehouseID })
	return list, nil
}

type movementRepo struct{ st *state }

func (r *movementRepo) Create(movement *entity.StockMovement) error {
	cp := *movement
	r.st.movements = append(r.st.movements, &cp)
	return nil
}

func (r *movementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.st.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *movementRepo) SumByItemAndWarehouse(itemID, warehouseID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, m := range r.st.movements {
		if m.ItemID == itemID && m.WarehouseID == warehouseID {
			total = total.Add(m.Quantity)
		}
	}
	return total, nil
}

func (r *movementRepo) ListByItem(itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range r.st.movements {
		if m.ItemID == itemID {
			cp := *m
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

type transferRepo struct{ st *state }

func (r *transferRepo) Create(transfer *entity.Transfer) error {
	cp := *transfer
	r.st.transfers[transfer.ID] = &cp
	return nil
}

func (r *transferRepo) GetByID(id string) (*entity.Transfer, error) {
	if t, ok := r.st.transfers[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (r *transferRepo) UpdateStatus(id, status string) error {
	t, ok := r.st.transfers[id]
	if !ok {
		return errNotFound("transfer", id)
	}
	t.Status = status
	return nil
}

func (r *transferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	var list []*entity.Transfer
	for _, t := range r.st.transfers {
		cp := *t
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

type incomingRepo struct{ st *state }

func (r *incomingRepo) Create(receipt *entity.IncomingReceipt) error {
	cp := *receipt
	r.st.incomings[receipt.ID] = &cp
	return nil
}

func (r *incomingRepo) GetByID(id string) (*entity.IncomingReceipt, error) {
	if rec, ok := r.st.incomings[id]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (r *incomingRepo) List(limit, offset int) ([]*entity.IncomingReceipt, error) {
	var list []*entity.IncomingReceipt
	for _, rec := range r.st.incomings {
		cp := *rec
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

type outgoingRepo struct{ st *state }

func (r *outgoingRepo) Create(issue *entity.OutgoingIssue) error {
	cp := *issue
	r.st.outgoings[issue.ID] = &cp
	return nil
}

func (r *outgoingRepo) GetByID(id string) (*entity.OutgoingIssue, error) {
	if iss, ok := r.st.outgoings[id]; ok {
		cp := *iss
		return &cp, nil
	}
	return nil, nil
}

func (r *outgoingRepo) List(limit, offset int) ([]*entity.OutgoingIssue, error) {
	var list []*entity.OutgoingIssue
	for _, iss := range r.st.outgoings {
		cp := *iss
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

type notFoundError struct{ what, id string }

func (e notFoundError) Error() string { return e.what + " " + e.id + " tidak ditemukan" }

func errNotFound(what, id string) error { return notFoundError{what: what, id: id} }

// ──────────────────────────────────────────────────────────────────────
// Wrapper dengan lock untuk akses di luar transaksi
// ──────────────────────────────────────────────────────────────────────

type lockedItemRepo struct{ s *Store }

func (r *lockedItemRepo) GetByID(id string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&itemRepo{r.s.state}).GetByID(id)
}

func (r *lockedItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&itemRepo{r.s.state}).GetForUpdate(id)
}

func (r *lockedItemRepo) List() ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&itemRepo{r.s.state}).List()
}

func (r *lockedItemRepo) ListBelowMinimum() ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&itemRepo{r.s.state}).ListBelowMinimum()
}

func (r *lockedItemRepo) UpdateOnHand(id string, quantity decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&itemRepo{r.s.state}).UpdateOnHand(id, quantity)
}

type lockedStockRepo struct{ s *Store }

func (r *lockedStockRepo) Get(itemID, warehouseID string) (*entity.WarehouseStock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&stockRepo{r.s.state}).Get(itemID, warehouseID)
}

func (r *lockedStockRepo) GetForUpdate(itemID, warehouseID string) (*entity.WarehouseStock, error) {
	return r.Get(itemID, warehouseID)
}

func (r *lockedStockRepo) Upsert(stock *entity.WarehouseStock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&stockRepo{r.s.state}).Upsert(stock)
}

func (r *lockedStockRepo) SumByItem(itemID string) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&stockRepo{r.s.state}).SumByItem(itemID)
}

func (r *lockedStockRepo) ListByItem(itemID string) ([]*entity.WarehouseStock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&stockRepo{r.s.state}).ListByItem(itemID)
}

type lockedMovementRepo struct{ s *Store }

func (r *lockedMovementRepo) Create(movement *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&movementRepo{r.s.state}).Create(movement)
}

func (r *lockedMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&movementRepo{r.s.state}).GetByID(id)
}

func (r *lockedMovementRepo) SumByItemAndWarehouse(itemID, warehouseID string) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&movementRepo{r.s.state}).SumByItemAndWarehouse(itemID, warehouseID)
}

func (r *lockedMovementRepo) ListByItem(itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&movementRepo{r.s.state}).ListByItem(itemID, limit, offset)
}

type lockedTransferRepo struct{ s *Store }

func (r *lockedTransferRepo) Create(transfer *entity.Transfer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&transferRepo{r.s.state}).Create(transfer)
}

func (r *lockedTransferRepo) GetByID(id string) (*entity.Transfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&transferRepo{r.s.state}).GetByID(id)
}

func (r *lockedTransferRepo) UpdateStatus(id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&transferRepo{r.s.state}).UpdateStatus(id, status)
}

func (r *lockedTransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&transferRepo{r.s.state}).List(limit, offset)
}

type lockedIncomingRepo struct{ s *Store }

func (r *lockedIncomingRepo) Create(receipt *entity.IncomingReceipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&incomingRepo{r.s.state}).Create(receipt)
}

func (r *lockedIncomingRepo) GetByID(id string) (*entity.IncomingReceipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&incomingRepo{r.s.state}).GetByID(id)
}

func (r *lockedIncomingRepo) List(limit, offset int) ([]*entity.IncomingReceipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&incomingRepo{r.s.state}).List(limit, offset)
}

type lockedOutgoingRepo struct{ s *Store }

func (r *lockedOutgoingRepo) Create(issue *entity.OutgoingIssue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&outgoingRepo{r.s.state}).Create(issue)
}

func (r *lockedOutgoingRepo) GetByID(id string) (*entity.OutgoingIssue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&outgoingRepo{r.s.state}).GetByID(id)
}

func (r *lockedOutgoingRepo) List(limit, offset int) ([]*entity.OutgoingIssue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&outgoingRepo{r.s.state}).List(limit, offset)
}

type warehouseRepo struct{ s *Store }

func (r *warehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if w, ok := r.s.state.warehouses[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (r *warehouseRepo) List() ([]*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Warehouse
	for _, w := range r.s.state.warehouses {
		if !w.IsActive {
			continue
		}
		cp := *w
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

type userRepo struct{ s *Store }

func (r *userRepo) FindByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.state.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.state.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

type summaryRepo struct{ s *Store }

func (r *summaryRepo) StockSummary(filter repository.SummaryFilter) ([]*entity.StockSummaryRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.StockSummaryRow
	for _, st := range r.s.state.stocks {
		if filter.ItemID != "" && st.ItemID != filter.ItemID {
			continue
		}
		if filter.WarehouseID != "" && st.WarehouseID != filter.WarehouseID {
			continue
		}
		it, ok := r.s.state.items[st.ItemID]
		if !ok {
			continue
		}
		w, ok := r.s.state.warehouses[st.WarehouseID]
		if !ok {
			continue
		}
		list = append(list, &entity.StockSummaryRow{
			ItemID:        it.ID,
			ItemCode:      it.Code,
			ItemName:      it.Name,
			WarehouseID:   w.ID,
			WarehouseName: w.Name,
			Unit:          it.Unit,
			Quantity:      st.Quantity,
			MinimumStock:  it.MinimumQuantity,
			UpdatedAt:     st.UpdatedAt,
		})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].ItemName != list[j].ItemName {
			return list[i].ItemName < list[j].ItemName
		}
		return list[i].WarehouseName < list[j].WarehouseName
	})
	return list, nil
}
