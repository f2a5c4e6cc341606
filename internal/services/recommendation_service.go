package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "estatehub/internal/errors"
	"estatehub/internal/models"
	"estatehub/internal/repositories"
	"estatehub/internal/utils"
	"estatehub/internal/validators"
	"estatehub/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// RecommendationService manages the per-user recommendation inbox. Inbox entries live on the
// recipient's user document; the sent view is derived by querying on the sender field.
type RecommendationService struct {
	users      repositories.UserRepository
	properties repositories.PropertyRepository
	validator  validators.RecommendationValidator
	now        func() time.Time
}

func NewRecommendationService(
	users repositories.UserRepository,
	properties repositories.PropertyRepository,
	validator validators.RecommendationValidator,
) *RecommendationService {
	return &RecommendationService{
		users:      users,
		properties: properties,
		validator:  validator,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Recommend delivers an unread entry to the inbox of the user registered under recipientEmail.
// Repeated recommendations of the same property are kept as separate entries.
func (s *RecommendationService) Recommend(ctx context.Context, senderID, recipientEmail, propertyID, message string) (*models.Recommendation, error) {
	sender, err := utils.ParseObjectID("user id", senderID)
	if err != nil {
		return nil, err
	}

	recipientEmail = normalizeEmail(recipientEmail)
	if err := s.validator.ValidateRecommend(recipientEmail, message); err != nil {
		return nil, err
	}

	recipient, err := s.users.FindByEmail(ctx, recipientEmail)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrRecipientNotFound, recipientEmail)
		}
		return nil, err
	}

	pid, err := utils.ParseObjectID("property id", propertyID)
	if err != nil {
		return nil, err
	}
	if _, err := s.properties.FindByID(ctx, pid); err != nil {
		return nil, err
	}

	entry := models.Recommendation{
		ID:       primitive.NewObjectID(),
		From:     sender,
		Property: pid,
		Message:  message,
		Status:   models.RecommendationUnread,
		// BSON dates hold milliseconds.
		RecommendedAt: s.now().Truncate(time.Millisecond),
	}
	if err := s.users.PushRecommendation(ctx, recipient.ID, entry); err != nil {
		return nil, err
	}

	logger.GlobalLogger.Printf("Recommendation sent: from=%s, to=%s, property=%s", senderID, recipient.ID.Hex(), propertyID)
	return &entry, nil
}

// MarkRead marks an entry of the recipient's own inbox as read. Marking a read entry again
// succeeds without change.
func (s *RecommendationService) MarkRead(ctx context.Context, recipientID, entryID string) error {
	recipient, err := utils.ParseObjectID("user id", recipientID)
	if err != nil {
		return err
	}
	entry, err := primitive.ObjectIDFromHex(strings.TrimSpace(entryID))
	if err != nil {
		return fmt.Errorf("%w: %q", apperrors.ErrEntryNotFound, entryID)
	}
	return s.users.MarkRecommendationRead(ctx, recipient, entry)
}

// ListReceived returns the recipient's inbox in delivery order with sender and property
// details resolved at read time.
func (s *RecommendationService) ListReceived(ctx context.Context, recipientID string) ([]models.ReceivedRecommendation, error) {
	uid, err := utils.ParseObjectID("user id", recipientID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	senderIDs := make([]primitive.ObjectID, 0, len(user.RecommendationsReceived))
	propertyIDs := make([]primitive.ObjectID, 0, len(user.RecommendationsReceived))
	for _, rec := range user.RecommendationsReceived {
		senderIDs = append(senderIDs, rec.From)
		propertyIDs = append(propertyIDs, rec.Property)
	}

	var (
		senders    map[primitive.ObjectID]models.UserSummary
		properties map[primitive.ObjectID]*models.PropertySummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summaries, err := s.users.FindSummaries(gctx, uniqueIDs(senderIDs))
		if err != nil {
			return err
		}
		senders = make(map[primitive.ObjectID]models.UserSummary, len(summaries))
		for _, u := range summaries {
			senders[u.ID] = u
		}
		return nil
	})
	g.Go(func() error {
		var err error
		properties, err = s.propertySummaries(gctx, propertyIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	received := make([]models.ReceivedRecommendation, 0, len(user.RecommendationsReceived))
	for _, rec := range user.RecommendationsReceived {
		item := models.ReceivedRecommendation{
			ID:            rec.ID,
			Property:      properties[rec.Property],
			Message:       rec.Message,
			Status:        rec.Status,
			RecommendedAt: rec.RecommendedAt,
		}
		if sender, ok := senders[rec.From]; ok {
			item.From = &sender
		}
		received = append(received, item)
	}
	return received, nil
}

// ListSent returns every entry senderID delivered, across all inboxes, annotated with its
// recipient and ordered by delivery time.
func (s *RecommendationService) ListSent(ctx context.Context, senderID string) ([]models.SentRecommendation, error) {
	sender, err := utils.ParseObjectID("user id", senderID)
	if err != nil {
		return nil, err
	}

	recipients, err := s.users.FindRecipientsOf(ctx, sender)
	if err != nil {
		return nil, err
	}

	sent := []models.SentRecommendation{}
	var propertyIDs []primitive.ObjectID
	for _, recipient := range recipients {
		for _, rec := range recipient.RecommendationsReceived {
			if rec.From != sender {
				continue
			}
			sent = append(sent, models.SentRecommendation{
				ID:             rec.ID,
				RecipientID:    recipient.ID,
				RecipientName:  recipient.Name,
				RecipientEmail: recipient.Email,
				Message:        rec.Message,
				Status:         rec.Status,
				RecommendedAt:  rec.RecommendedAt,
			})
			propertyIDs = append(propertyIDs, rec.Property)
		}
	}

	properties, err := s.propertySummaries(ctx, propertyIDs)
	if err != nil {
		return nil, err
	}
	for i := range sent {
		sent[i].Property = properties[propertyIDs[i]]
	}

	sort.SliceStable(sent, func(i, j int) bool {
		return sent[i].RecommendedAt.Before(sent[j].RecommendedAt)
	})
	return sent, nil
}

func (s *RecommendationService) propertySummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.PropertySummary, error) {
	found, err := s.properties.FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	summaries := make(map[primitive.ObjectID]*models.PropertySummary, len(found))
	for i := range found {
		summaries[found[i].ID] = found[i].Summary()
	}
	return summaries, nil
}

func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
