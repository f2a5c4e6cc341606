package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	apperrors "estatehub/internal/errors"
	"estatehub/internal/filter"
	"estatehub/internal/models"
	"estatehub/internal/transformers"
	"estatehub/internal/validators"
	"estatehub/pkg/cache"
)

// memPropertyRepo is an in-memory PropertyRepository that counts catalog scans.
type memPropertyRepo struct {
	mu        sync.Mutex
	items     []models.Property
	findCalls int
}

func (r *memPropertyRepo) Find(_ context.Context, spec *filter.Spec) ([]models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	out := []models.Property{}
	for i := range r.items {
		if spec.Matches(&r.items[i]) {
			out = append(out, r.items[i])
		}
	}
	return out, nil
}

func (r *memPropertyRepo) scans() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findCalls
}

func (r *memPropertyRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			p := r.items[i]
			return &p, nil
		}
	}
	return nil, apperrors.ErrPropertyNotFound
}

func (r *memPropertyRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := []models.Property{}
	for _, p := range r.items {
		if wanted[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPropertyRepo) Create(_ context.Context, property *models.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	property.ID = primitive.NewObjectID()
	r.items = append(r.items, *property)
	return nil
}

func (r *memPropertyRepo) Update(_ context.Context, id primitive.ObjectID, update models.PropertyUpdate, now time.Time) (*models.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			update.Apply(&r.items[i])
			r.items[i].UpdatedAt = now
			p := r.items[i]
			return &p, nil
		}
	}
	return nil, apperrors.ErrPropertyNotFound
}

func (r *memPropertyRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrPropertyNotFound
}

// memUserRepo is an in-memory UserRepository. Users are returned as copies.
type memUserRepo struct {
	mu    sync.Mutex
	order []primitive.ObjectID
	users map[primitive.ObjectID]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Favorites = append([]primitive.ObjectID{}, u.Favorites...)
	c.RecommendationsReceived = append([]models.Recommendation{}, u.RecommendationsReceived...)
	return &c
}

func (r *memUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.order {
		if r.users[id].Email == email {
			return cloneUser(r.users[id]), nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *memUserRepo) FindSummaries(_ context.Context, ids []primitive.ObjectID) ([]models.UserSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.UserSummary{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u.Summary())
		}
	}
	return out, nil
}

func (r *memUserRepo) SearchByEmail(_ context.Context, fragment string, limit int) ([]models.UserSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.UserSummary{}
	for _, id := range r.order {
		u := r.users[id]
		if strings.Contains(strings.ToLower(u.Email), strings.ToLower(fragment)) {
			out = append(out, u.Summary())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailTaken
		}
	}
	user.ID = primitive.NewObjectID()
	r.users[user.ID] = cloneUser(user)
	r.order = append(r.order, user.ID)
	return nil
}

func (r *memUserRepo) AddFavorite(_ context.Context, userID, propertyID primitive.ObjectID) (*models.FavoritesSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	if u.HasFavorite(propertyID) {
		return nil, apperrors.ErrAlreadyFavorited
	}
	u.Favorites = append(u.Favorites, propertyID)
	return &models.FavoritesSet{UserID: userID, Favorites: append([]primitive.ObjectID{}, u.Favorites...)}, nil
}

func (r *memUserRepo) RemoveFavorite(_ context.Context, userID, propertyID primitive.ObjectID) (*models.FavoritesSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	kept := []primitive.ObjectID{}
	for _, f := range u.Favorites {
		if f != propertyID {
			kept = append(kept, f)
		}
	}
	u.Favorites = kept
	return &models.FavoritesSet{UserID: userID, Favorites: append([]primitive.ObjectID{}, kept...)}, nil
}

func (r *memUserRepo) PushRecommendation(_ context.Context, recipientID primitive.ObjectID, rec models.Recommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[recipientID]
	if !ok {
		return apperrors.ErrRecipientNotFound
	}
	u.RecommendationsReceived = append(u.RecommendationsReceived, rec)
	return nil
}

func (r *memUserRepo) MarkRecommendationRead(_ context.Context, recipientID, entryID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[recipientID]; ok {
		for i := range u.RecommendationsReceived {
			if u.RecommendationsReceived[i].ID == entryID {
				u.RecommendationsReceived[i].Status = models.RecommendationRead
				return nil
			}
		}
	}
	return apperrors.ErrEntryNotFound
}

func (r *memUserRepo) FindRecipientsOf(_ context.Context, senderID primitive.ObjectID) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.User{}
	for _, id := range r.order {
		u := r.users[id]
		for _, rec := range u.RecommendationsReceived {
			if rec.From == senderID {
				out = append(out, *cloneUser(u))
				break
			}
		}
	}
	return out, nil
}

// failingStore errors on every call, like a cache backend that is down.
type failingStore struct{}

var errStoreDown = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, errStoreDown }

func (failingStore) Set(context.Context, string, []byte, time.Duration) error { return errStoreDown }

func (failingStore) DeletePattern(context.Context, string) (int64, error) { return 0, errStoreDown }

type testEnv struct {
	mr              *miniredis.Miniredis
	properties      *memPropertyRepo
	users           *memUserRepo
	propertySvc     *PropertyService
	favoriteSvc     *FavoriteService
	recommendations *RecommendationService
	userSvc         *UserService
}

func newEnv(t *testing.T, store cache.Store) *testEnv {
	t.Helper()
	properties := &memPropertyRepo{}
	users := newMemUserRepo()
	rt := cache.NewReadThrough(store, time.Hour)

	userSvc := NewUserService(users, validators.NewUserValidator(), "test-secret", time.Hour)
	userSvc.hashCost = bcrypt.MinCost

	return &testEnv{
		properties:      properties,
		users:           users,
		propertySvc:     NewPropertyService(properties, rt, transformers.NewPropertyTransformer(nil), validators.NewPropertyValidator()),
		favoriteSvc:     NewFavoriteService(users, properties, rt),
		recommendations: NewRecommendationService(users, properties, validators.NewRecommendationValidator()),
		userSvc:         userSvc,
	}
}

// newRedisEnv backs the cache with an in-process Redis server.
func newRedisEnv(t *testing.T) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	env := newEnv(t, cache.NewRedisStore(client, time.Second))
	env.mr = mr
	return env
}

func (e *testEnv) seedUser(t *testing.T, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func (e *testEnv) seedProperty(t *testing.T, owner *models.User, input models.PropertyInput) *models.Property {
	t.Helper()
	if input.Type == "" {
		input.Type = "house"
	}
	if input.ListingType == "" {
		input.ListingType = models.ListingTypeSale
	}
	if input.City == "" {
		input.City = "Austin"
	}
	if input.State == "" {
		input.State = "TX"
	}
	p, err := e.propertySvc.CreateProperty(context.Background(), owner.ID.Hex(), &input)
	require.NoError(t, err)
	return p
}
