package usecase

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"ripple/internal/domain/entity"
	"ripple/internal/domain/repository"
	"ripple/pkg/errors"
)

// memStore backs every fake repository so that checkout can touch listings,
// orders and cart rows together, the way a Firestore transaction does.
type memStore struct {
	mu        sync.Mutex
	seq       int
	users     map[string]*entity.User
	vendors   map[string]*entity.Vendor
	charities map[string]*entity.PublicCharity
	listings  map[string]*entity.Listing // vendorID/listingID
	cart      map[string]*entity.CartItem
	orders    map[string]*entity.Order
	wallets   map[string]*entity.Wallet
	posts     map[string]*entity.CharityPost
	donations []*entity.DonationRecord
	writes    int
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[string]*entity.User{},
		vendors:   map[string]*entity.Vendor{},
		charities: map[string]*entity.PublicCharity{},
		listings:  map[string]*entity.Listing{},
		cart:      map[string]*entity.CartItem{},
		orders:    map[string]*entity.Order{},
		wallets:   map[string]*entity.Wallet{},
		posts:     map[string]*entity.CharityPost{},
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func listingKey(vendorID, id string) string { return vendorID + "/" + id }

// users

type memUserRepo struct{ s *memStore }

func (r memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *u
	r.s.users[u.ID] = &c
	r.s.writes++
	return nil
}

func (r memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	c := *u
	return &c, nil
}

func (r memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r memUserRepo) Update(ctx context.Context, u *entity.User) error { return r.Create(ctx, u) }

type memVendorRepo struct{ s *memStore }

func (r memVendorRepo) Create(_ context.Context, v *entity.Vendor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *v
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
		v.CreatedAt = c.CreatedAt
	}
	r.s.vendors[v.ID] = &c
	r.s.writes++
	return nil
}

func (r memVendorRepo) GetByID(_ context.Context, id string) (*entity.Vendor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.vendors[id]
	if !ok {
		return nil, errors.NotFound("Vendor", nil)
	}
	c := *v
	return &c, nil
}

func (r memVendorRepo) Update(ctx context.Context, v *entity.Vendor) error { return r.Create(ctx, v) }

type memCharityRepo struct {
	s     *memStore
	reads int
}

func (r *memCharityRepo) Upsert(_ context.Context, ch *entity.PublicCharity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *ch
	r.s.charities[ch.ID] = &c
	return nil
}

func (r *memCharityRepo) GetByID(_ context.Context, id string) (*entity.PublicCharity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.reads++
	ch, ok := r.s.charities[id]
	if !ok {
		return nil, errors.NotFound("Charity", nil)
	}
	c := *ch
	return &c, nil
}

// listings

type memListingRepo struct{ s *memStore }

func (r memListingRepo) Create(_ context.Context, l *entity.Listing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l.ID == "" {
		l.ID = r.s.nextID("listing")
	}
	c := *l
	r.s.listings[listingKey(l.VendorID, l.ID)] = &c
	r.s.writes++
	return nil
}

func (r memListingRepo) GetByID(_ context.Context, vendorID, id string) (*entity.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.listings[listingKey(vendorID, id)]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	c := *l
	return &c, nil
}

func (r memListingRepo) Update(ctx context.Context, l *entity.Listing) error { return r.Create(ctx, l) }

func (r memListingRepo) Delete(_ context.Context, vendorID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := listingKey(vendorID, id)
	if _, ok := r.s.listings[key]; !ok {
		return errors.NotFound("Listing", nil)
	}
	delete(r.s.listings, key)
	return nil
}

func (r memListingRepo) ListByVendor(_ context.Context, vendorID string) ([]*entity.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Listing
	for _, l := range r.s.listings {
		if l.VendorID == vendorID {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r memListingRepo) ListAll(_ context.Context, f repository.ListingFilter) ([]*entity.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Listing
	for _, l := range r.s.listings {
		if f.InStock && l.Quantity <= 0 {
			continue
		}
		if f.Category != "" && l.Category != f.Category {
			continue
		}
		c := *l
		out = append(out, &c)
	}
	return out, nil
}

// cart

type memCartRepo struct{ s *memStore }

func (r memCartRepo) Create(_ context.Context, item *entity.CartItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item.ID = r.s.nextID("cart")
	c := *item
	r.s.cart[item.ID] = &c
	r.s.writes++
	return nil
}

func (r memCartRepo) GetByID(_ context.Context, id string) (*entity.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.cart[id]
	if !ok {
		return nil, errors.NotFound("Cart item", nil)
	}
	c := *item
	return &c, nil
}

func (r memCartRepo) FindMatch(_ context.Context, donorID, productID, charityID string) (*entity.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, item := range r.s.cart {
		if item.DonorID == donorID && item.ProductID == productID && item.CharityID == charityID {
			c := *item
			return &c, nil
		}
	}
	return nil, errors.NotFound("Cart item", nil)
}

func (r memCartRepo) Update(_ context.Context, item *entity.CartItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *item
	r.s.cart[item.ID] = &c
	r.s.writes++
	return nil
}

func (r memCartRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.cart, id)
	return nil
}

// cartLocked returns the donor's rows in insertion order.
func (s *memStore) cartLocked(donorID string) []*entity.CartItem {
	var out []*entity.CartItem
	for i := 1; i <= s.seq; i++ {
		item, ok := s.cart[fmt.Sprintf("cart-%d", i)]
		if !ok || item.DonorID != donorID {
			continue
		}
		c := *item
		out = append(out, &c)
	}
	return out
}

func (r memCartRepo) ListByDonor(_ context.Context, donorID string) ([]*entity.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.cartLocked(donorID), nil
}

func (r memCartRepo) DeleteByDonor(_ context.Context, donorID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for id, item := range r.s.cart {
		if item.DonorID == donorID {
			delete(r.s.cart, id)
			n++
		}
	}
	return n, nil
}

// orders

type memOrderRepo struct{ s *memStore }

func (r memOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	c := *o
	return &c, nil
}

func (r memOrderRepo) filter(keep func(*entity.Order) bool) []*entity.Order {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.Order{}
	for _, o := range r.s.orders {
		if keep(o) {
			c := *o
			out = append(out, &c)
		}
	}
	return out
}

func (r memOrderRepo) ListByVendor(_ context.Context, vendorID, status string) ([]*entity.Order, error) {
	return r.filter(func(o *entity.Order) bool {
		return o.VendorID == vendorID && (status == "" || o.Status == status)
	}), nil
}

func (r memOrderRepo) ListByDonor(_ context.Context, donorID string) ([]*entity.Order, error) {
	return r.filter(func(o *entity.Order) bool { return o.DonorID == donorID }), nil
}

func (r memOrderRepo) ListByCharity(_ context.Context, charityID string) ([]*entity.Order, error) {
	return r.filter(func(o *entity.Order) bool { return o.CharityID == charityID }), nil
}

func (r memOrderRepo) UpdateStatus(_ context.Context, id string, decide repository.StatusDecision) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	order := *stored
	credit, err := decide(&order)
	if err != nil {
		return nil, err
	}
	if credit > 0 {
		w := r.s.walletLocked(order.VendorID)
		w.Credit(r.s.nextID("entry"), credit, order.ID, time.Now())
	}
	c := order
	r.s.orders[id] = &c
	r.s.writes++
	return &order, nil
}

// memCheckoutRepo holds the store lock for the whole checkout, standing in
// for a Firestore transaction. beforeTx runs just before the lock is taken.
type memCheckoutRepo struct {
	s        *memStore
	fail     error
	beforeTx func()
}

func (r *memCheckoutRepo) PlaceOrders(_ context.Context, donorID string, build repository.OrderBuilder) ([]*entity.Order, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	if r.beforeTx != nil {
		r.beforeTx()
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var selected []*entity.CartItem
	for _, item := range r.s.cartLocked(donorID) {
		if item.Selected {
			selected = append(selected, item)
		}
	}
	orders, err := build(selected)
	if err != nil {
		return nil, err
	}

	ordered := map[string]int{}
	for _, o := range orders {
		for _, item := range o.Items {
			key := listingKey(o.VendorID, item.ProductID)
			if _, ok := r.s.listings[key]; !ok {
				return nil, errors.NotFound("Listing "+item.ProductID, nil)
			}
			ordered[key] += item.Quantity
		}
	}

	for key, n := range ordered {
		l := r.s.listings[key]
		l.Quantity = entity.DecrementStock(l.Quantity, n)
	}
	for _, o := range orders {
		o.ID = r.s.nextID("order")
		c := *o
		r.s.orders[o.ID] = &c
	}
	for id, item := range r.s.cart {
		if item.DonorID == donorID {
			delete(r.s.cart, id)
		}
	}
	r.s.writes++
	return orders, nil
}

// wallets

func (s *memStore) walletLocked(vendorID string) *entity.Wallet {
	w, ok := s.wallets[vendorID]
	if !ok {
		w = &entity.Wallet{VendorID: vendorID, History: []entity.WalletEntry{}}
		s.wallets[vendorID] = w
	}
	return w
}

type memWalletRepo struct{ s *memStore }

func (r memWalletRepo) GetOrCreate(_ context.Context, vendorID string) (*entity.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *r.s.walletLocked(vendorID)
	return &c, nil
}

func (r memWalletRepo) Credit(_ context.Context, vendorID string, amount float64, orderID string) (*entity.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w := r.s.walletLocked(vendorID)
	w.Credit(r.s.nextID("entry"), amount, orderID, time.Now())
	c := *w
	return &c, nil
}

func (r memWalletRepo) Withdraw(_ context.Context, vendorID string, amount float64) (*entity.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w := r.s.walletLocked(vendorID)
	if _, ok := w.Withdraw(r.s.nextID("entry"), amount, time.Now()); !ok {
		return nil, errors.InsufficientBalance()
	}
	c := *w
	return &c, nil
}

// posts and donations

type memPostRepo struct{ s *memStore }

func (r memPostRepo) Create(_ context.Context, p *entity.CharityPost) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.nextID("post")
	p.CreatedAt = time.Now()
	c := *p
	c.NeededItems = append([]entity.NeededItem(nil), p.NeededItems...)
	r.s.posts[p.ID] = &c
	return nil
}

func (r memPostRepo) GetByID(_ context.Context, id string) (*entity.CharityPost, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, errors.NotFound("Post", nil)
	}
	c := *p
	c.NeededItems = append([]entity.NeededItem(nil), p.NeededItems...)
	return &c, nil
}

func (r memPostRepo) Update(_ context.Context, id string, edit repository.PostEdit) (*entity.CharityPost, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.posts[id]
	if !ok {
		return nil, errors.NotFound("Post", nil)
	}
	p := *stored
	p.NeededItems = append([]entity.NeededItem(nil), stored.NeededItems...)
	if err := edit(&p); err != nil {
		return nil, err
	}
	c := p
	r.s.posts[id] = &c
	return &p, nil
}

// racingPostRepo runs beforeUpdate ahead of each Update, letting a test slip
// another write in after the caller has last read the post.
type racingPostRepo struct {
	memPostRepo
	beforeUpdate func()
}

func (r racingPostRepo) Update(ctx context.Context, id string, edit repository.PostEdit) (*entity.CharityPost, error) {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}
	return r.memPostRepo.Update(ctx, id, edit)
}

func (r memPostRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.posts, id)
	return nil
}

func (r memPostRepo) List(_ context.Context, f repository.PostFilter) ([]*entity.CharityPost, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.CharityPost{}
	for _, p := range r.s.posts {
		if (f.CharityID == "" || p.CharityID == f.CharityID) && (f.PostType == "" || p.PostType == f.PostType) {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

type memDonationRepo struct {
	s    *memStore
	fail error
}

func (r *memDonationRepo) Record(_ context.Context, rec *entity.DonationRecord) error {
	if r.fail != nil {
		return r.fail
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rec.PostID != "" {
		p, ok := r.s.posts[rec.PostID]
		if !ok {
			return errors.NotFound("Post", nil)
		}
		p.AddDonations(rec.Items)
	}
	rec.ID = r.s.nextID("donation")
	c := *rec
	r.s.donations = append(r.s.donations, &c)
	return nil
}

func (r *memDonationRepo) ListByCharity(_ context.Context, charityID string) ([]*entity.DonationRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.DonationRecord{}
	for _, d := range r.s.donations {
		if d.CharityID == charityID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memDonationRepo) ListByDonor(_ context.Context, donorID string) ([]*entity.DonationRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*entity.DonationRecord{}
	for _, d := range r.s.donations {
		if d.DonorID == donorID {
			out = append(out, d)
		}
	}
	return out, nil
}

// collaborators

type event struct {
	userID string
	kind   string
	data   interface{}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []event
}

func (n *recordingNotifier) Notify(userID, kind string, data interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event{userID, kind, data})
}

func (n *recordingNotifier) kinds(userID string) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, e := range n.events {
		if e.userID == userID {
			out = append(out, e.kind)
		}
	}
	return out
}

type fakeAuth struct {
	passwords map[string]string // email -> password
	uids      map[string]string // email -> uid
	revoked   []string
	deleted   []string
	createErr error
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{passwords: map[string]string{}, uids: map[string]string{}}
}

func (f *fakeAuth) CreateUser(_ context.Context, email, password, _ string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	uid := "uid-" + email
	f.passwords[email] = password
	f.uids[email] = uid
	return uid, nil
}

func (f *fakeAuth) DeleteUser(_ context.Context, uid string) error {
	f.deleted = append(f.deleted, uid)
	return nil
}

func (f *fakeAuth) VerifyToken(_ context.Context, token string) (string, error) {
	for email, uid := range f.uids {
		if token == "token-"+email {
			return uid, nil
		}
	}
	return "", fmt.Errorf("bad token")
}

func (f *fakeAuth) SignInWithPassword(_ context.Context, email, password string) (*entity.AuthSession, error) {
	if pw, ok := f.passwords[email]; !ok || pw != password {
		return nil, errors.Unauthorized("Invalid email or password", nil)
	}
	return &entity.AuthSession{UID: f.uids[email], Email: email, IDToken: "token-" + email, RefreshToken: "refresh"}, nil
}

func (f *fakeAuth) RevokeRefreshTokens(_ context.Context, uid string) error {
	f.revoked = append(f.revoked, uid)
	return nil
}

type memCache struct {
	mu   sync.Mutex
	data map[string]interface{}
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string]interface{}{}} }

func (c *memCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	switch d := dest.(type) {
	case *entity.ReliefAnalysis:
		*d = *(v.(*entity.ReliefAnalysis))
	case *entity.PublicCharity:
		*d = *(v.(*entity.PublicCharity))
	default:
		return false, fmt.Errorf("unsupported type %T", dest)
	}
	return true, nil
}

func (c *memCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

type fakeImageStore struct {
	folder      string
	contentType string
	bytes       int
	deleted     []string
}

func (s *fakeImageStore) DeleteFile(_ context.Context, url string) error {
	s.deleted = append(s.deleted, url)
	return nil
}

func (s *fakeImageStore) UploadImage(_ context.Context, file io.Reader, contentType, folder string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	s.folder, s.contentType, s.bytes = folder, contentType, len(data)
	return "https://storage.googleapis.com/bucket/" + folder + "/img", nil
}
