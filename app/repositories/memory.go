package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pawvilla/pawvilla/app/models"
)

// The in-memory repositories implement the same contracts as the Mongo ones
// and back the handler tests. They are safe for concurrent use.

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: map[primitive.ObjectID]models.User{}}
}

func (r *MemoryUserRepository) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	r.users[u.ID] = *u
	return nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) Update(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range r.users {
		if id != u.ID && existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}
	u.UpdatedAt = time.Now()
	r.users[u.ID] = *u
	return nil
}

func (r *MemoryUserRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *MemoryUserRepository) FindByRole(_ context.Context, role string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.User{}
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sortUsersNewestFirst(out)
	return out, nil
}

func (r *MemoryUserRepository) Search(_ context.Context, query string, limit int64) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := strings.ToLower(query)
	out := []models.User{}
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u)
		}
	}
	sortUsersNewestFirst(out)
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryUserRepository) CountByRole(_ context.Context, role string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *MemoryUserRepository) Recent(_ context.Context, role string, limit int64) ([]models.User, error) {
	out, _ := r.FindByRole(context.Background(), role)
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func sortUsersNewestFirst(users []models.User) {
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
}

type MemoryPetRepository struct {
	mu   sync.RWMutex
	pets map[primitive.ObjectID]models.Pet
}

func NewMemoryPetRepository() *MemoryPetRepository {
	return &MemoryPetRepository{pets: map[primitive.ObjectID]models.Pet{}}
}

func (r *MemoryPetRepository) Create(_ context.Context, p *models.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.pets[p.ID] = *p
	return nil
}

func (r *MemoryPetRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *MemoryPetRepository) Update(_ context.Context, p *models.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pets[p.ID]; !ok {
		return ErrNotFound
	}
	p.UpdatedAt = time.Now()
	r.pets[p.ID] = *p
	return nil
}

func (r *MemoryPetRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pets[id]; !ok {
		return ErrNotFound
	}
	delete(r.pets, id)
	return nil
}

func (r *MemoryPetRepository) All(_ context.Context) ([]models.Pet, error) {
	return r.filter(func(models.Pet) bool { return true }), nil
}

func (r *MemoryPetRepository) Search(_ context.Context, query string, limit int64) ([]models.Pet, error) {
	q := strings.ToLower(query)
	out := r.filter(func(p models.Pet) bool {
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Type), q) ||
			strings.Contains(strings.ToLower(p.OwnerName), q)
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryPetRepository) ByOwner(_ context.Context, ownerName string) ([]models.Pet, error) {
	q := strings.ToLower(ownerName)
	return r.filter(func(p models.Pet) bool {
		return strings.Contains(strings.ToLower(p.OwnerName), q)
	}), nil
}

func (r *MemoryPetRepository) ByType(_ context.Context, petType string) ([]models.Pet, error) {
	return r.filter(func(p models.Pet) bool { return p.Type == petType }), nil
}

func (r *MemoryPetRepository) filter(keep func(models.Pet) bool) []models.Pet {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Pet{}
	for _, p := range r.pets {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *MemoryPetRepository) Stats(_ context.Context) (*models.PetStats, error) {
	all, _ := r.All(context.Background())
	byType := map[string]int64{}
	var totalWeight float64
	for _, p := range all {
		byType[p.Type]++
		totalWeight += p.Weight
	}
	var avg float64
	if len(all) > 0 {
		avg = totalWeight / float64(len(all))
	}
	recent := all
	if len(recent) > 5 {
		recent = recent[:5]
	}
	summaries := make([]models.PetSummary, 0, len(recent))
	for _, p := range recent {
		summaries = append(summaries, models.PetSummary{
			Name:      p.Name,
			Type:      p.Type,
			OwnerName: p.OwnerName,
			CreatedAt: p.CreatedAt,
		})
	}
	return &models.PetStats{
		TotalPets:     int64(len(all)),
		PetsByType:    byType,
		AverageWeight: avg,
		RecentPets:    summaries,
	}, nil
}

type MemoryDoctorRepository struct {
	mu      sync.RWMutex
	doctors map[primitive.ObjectID]models.Doctor
}

func NewMemoryDoctorRepository() *MemoryDoctorRepository {
	return &MemoryDoctorRepository{doctors: map[primitive.ObjectID]models.Doctor{}}
}

func (r *MemoryDoctorRepository) Create(_ context.Context, d *models.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now
	r.doctors[d.ID] = *d
	return nil
}

func (r *MemoryDoctorRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.doctors[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (r *MemoryDoctorRepository) Update(_ context.Context, d *models.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.doctors[d.ID]; !ok {
		return ErrNotFound
	}
	d.UpdatedAt = time.Now()
	r.doctors[d.ID] = *d
	return nil
}

func (r *MemoryDoctorRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.doctors[id]; !ok {
		return ErrNotFound
	}
	delete(r.doctors, id)
	return nil
}

func (r *MemoryDoctorRepository) ListActive(_ context.Context) ([]models.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Doctor{}
	for _, d := range r.doctors {
		if d.IsActive {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *MemoryDoctorRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.doctors)), nil
}

type MemoryProductRepository struct {
	mu       sync.RWMutex
	products map[primitive.ObjectID]models.Product
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{products: map[primitive.ObjectID]models.Product{}}
}

func (r *MemoryProductRepository) Create(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.products[p.ID] = *p
	return nil
}

func (r *MemoryProductRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *MemoryProductRepository) Update(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return ErrNotFound
	}
	p.UpdatedAt = time.Now()
	r.products[p.ID] = *p
	return nil
}

func (r *MemoryProductRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *MemoryProductRepository) List(_ context.Context, category, nameQuery string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := strings.ToLower(nameQuery)
	out := []models.Product{}
	for _, p := range r.products {
		if category != "" && p.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryProductRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}

type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[primitive.ObjectID]models.Order
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: map[primitive.ObjectID]models.Order{}}
}

func (r *MemoryOrderRepository) Create(_ context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	r.orders[o.ID] = *o
	return nil
}

func (r *MemoryOrderRepository) ByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Order{}
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

type MemoryAppointmentRepository struct {
	mu    sync.RWMutex
	appts map[primitive.ObjectID]models.Appointment

	// Users lets AllWithOwner resolve owner name and email.
	Users *MemoryUserRepository
}

func NewMemoryAppointmentRepository(users *MemoryUserRepository) *MemoryAppointmentRepository {
	return &MemoryAppointmentRepository{
		appts: map[primitive.ObjectID]models.Appointment{},
		Users: users,
	}
}

func (r *MemoryAppointmentRepository) Create(_ context.Context, a *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	r.appts[a.ID] = *a
	return nil
}

func (r *MemoryAppointmentRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.appts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *MemoryAppointmentRepository) ByOwner(_ context.Context, ownerID primitive.ObjectID) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Appointment{}
	for _, a := range r.appts {
		if a.PetOwner == ownerID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryAppointmentRepository) AllWithOwner(ctx context.Context) ([]models.AppointmentWithOwner, error) {
	r.mu.RLock()
	appts := make([]models.Appointment, 0, len(r.appts))
	for _, a := range r.appts {
		appts = append(appts, a)
	}
	r.mu.RUnlock()

	sort.Slice(appts, func(i, j int) bool {
		return appts[i].CreatedAt.After(appts[j].CreatedAt)
	})
	out := make([]models.AppointmentWithOwner, 0, len(appts))
	for _, a := range appts {
		item := models.AppointmentWithOwner{Appointment: a}
		if r.Users != nil {
			if u, err := r.Users.FindByID(ctx, a.PetOwner); err == nil {
				item.OwnerName = u.Name
				item.OwnerEmail = u.Email
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *MemoryAppointmentRepository) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appts[id]
	if !ok {
		return nil, ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	r.appts[id] = a
	return &a, nil
}
