package service

import (
	"alcyxob/coach-app/internal/cache"
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/repository"
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation page bounds.
const (
	DefaultConversationLimit = 100
	MaxConversationLimit     = 500
)

// Page selects a window of a conversation. Offset counts back from the
// newest message, so the zero Page is the latest DefaultConversationLimit
// messages.
type Page struct {
	Offset int64
	Limit  int64
}

func (p Page) normalized() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultConversationLimit
	}
	if p.Limit > MaxConversationLimit {
		p.Limit = MaxConversationLimit
	}
	return p
}

// Contact is one entry of a user's inbox.
type Contact struct {
	UserID   primitive.ObjectID `json:"userId"`
	Name     string             `json:"name"`
	Username string             `json:"username"`
	Role     domain.Role        `json:"role"`
	Unread   int64              `json:"unread"`
}

type MessageService interface {
	Send(ctx context.Context, actor domain.Actor, receiverID primitive.ObjectID, content string) (*domain.Message, error)
	// Conversation returns the messages between the caller and other in
	// both directions, oldest first within the page.
	Conversation(ctx context.Context, actor domain.Actor, otherUserID primitive.ObjectID, page Page) ([]domain.Message, error)
	MarkRead(ctx context.Context, actor domain.Actor, messageID primitive.ObjectID) error
	UnreadCount(ctx context.Context, actor domain.Actor) (int64, error)
	// Inbox lists the people the caller may talk to: a coach sees their
	// clients, a client sees their coach.
	Inbox(ctx context.Context, actor domain.Actor) ([]Contact, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	coachRepo   repository.CoachProfileRepository
	clientRepo  repository.ClientProfileRepository
	views       cache.ViewCache
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	coachRepo repository.CoachProfileRepository,
	clientRepo repository.ClientProfileRepository,
	views cache.ViewCache,
) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		coachRepo:   coachRepo,
		clientRepo:  clientRepo,
		views:       views,
	}
}

func (s *messageService) Send(ctx context.Context, actor domain.Actor, receiverID primitive.ObjectID, content string) (*domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMessage
	}
	receiver, err := s.partner(ctx, actor, receiverID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{SenderID: actor.UserID, ReceiverID: receiver.ID, Content: content}
	if _, err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, dbError("send message", err)
	}
	if receiver.IsCoach() {
		// unread counter on the dashboard
		invalidateCoachViews(ctx, s.views, receiver.ID)
	}
	return msg, nil
}

func (s *messageService) Conversation(ctx context.Context, actor domain.Actor, otherUserID primitive.ObjectID, page Page) ([]domain.Message, error) {
	if _, err := s.partner(ctx, actor, otherUserID); err != nil {
		return nil, err
	}
	page = page.normalized()
	messages, err := s.messageRepo.Conversation(ctx, actor.UserID, otherUserID, page.Offset, page.Limit)
	if err != nil {
		return nil, dbError("load conversation", err)
	}
	return messages, nil
}

// MarkRead flags a message as read. Only its receiver may do so; marking an
// already-read message again is a no-op.
func (s *messageService) MarkRead(ctx context.Context, actor domain.Actor, messageID primitive.ObjectID) error {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMessageNotFound
		}
		return dbError("load message", err)
	}
	if msg.ReceiverID != actor.UserID {
		return newError(ErrUnauthorized, "only the receiver can mark a message as read")
	}
	if msg.Read {
		return nil
	}
	if err := s.messageRepo.MarkRead(ctx, messageID, actor.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMessageNotFound
		}
		return dbError("mark message read", err)
	}
	if actor.IsCoach() {
		invalidateCoachViews(ctx, s.views, actor.UserID)
	}
	return nil
}

func (s *messageService) UnreadCount(ctx context.Context, actor domain.Actor) (int64, error) {
	n, err := s.messageRepo.CountUnread(ctx, actor.UserID, nil)
	if err != nil {
		return 0, dbError("count unread messages", err)
	}
	return n, nil
}

func (s *messageService) Inbox(ctx context.Context, actor domain.Actor) ([]Contact, error) {
	var userIDs []primitive.ObjectID
	switch actor.Role {
	case domain.RoleCoach:
		coach, err := coachProfileOf(ctx, s.coachRepo, actor)
		if err != nil {
			return nil, err
		}
		clients, err := s.clientRepo.GetByCoachID(ctx, coach.ID)
		if err != nil {
			return nil, dbError("list clients", err)
		}
		for _, c := range clients {
			userIDs = append(userIDs, c.UserID)
		}
	case domain.RoleClient:
		client, err := clientProfileOf(ctx, s.clientRepo, actor)
		if err != nil {
			return nil, err
		}
		if client.HasCoach() {
			coachUserID, err := coachUserIDOf(ctx, s.coachRepo, *client.CoachID)
			if err != nil {
				return nil, err
			}
			userIDs = append(userIDs, coachUserID)
		}
	default:
		return nil, ErrForbiddenRole
	}

	contacts := []Contact{}
	if len(userIDs) == 0 {
		return contacts, nil
	}
	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, dbError("load contacts", err)
	}
	for _, u := range users {
		sender := u.ID
		unread, err := s.messageRepo.CountUnread(ctx, actor.UserID, &sender)
		if err != nil {
			return nil, dbError("count unread messages", err)
		}
		contacts = append(contacts, Contact{UserID: u.ID, Name: u.Name, Username: u.Username, Role: u.Role, Unread: unread})
	}
	return contacts, nil
}

// partner loads other and checks that the caller and other are a coach and
// one of their clients, in either direction.
func (s *messageService) partner(ctx context.Context, actor domain.Actor, otherUserID primitive.ObjectID) (*domain.User, error) {
	if otherUserID == actor.UserID {
		return nil, validationError("cannot message yourself")
	}
	other, err := s.userRepo.GetByID(ctx, otherUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, dbError("load user", err)
	}

	var coachUserID, clientUserID primitive.ObjectID
	switch {
	case actor.IsCoach() && other.IsClient():
		coachUserID, clientUserID = actor.UserID, other.ID
	case actor.IsClient() && other.IsCoach():
		coachUserID, clientUserID = other.ID, actor.UserID
	default:
		return nil, ErrNotConversationPartner
	}

	coach, err := s.coachRepo.GetByUserID(ctx, coachUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotConversationPartner
		}
		return nil, dbError("load coach profile", err)
	}
	client, err := s.clientRepo.GetByUserID(ctx, clientUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotConversationPartner
		}
		return nil, dbError("load client profile", err)
	}
	if !client.HasCoach() || *client.CoachID != coach.ID {
		return nil, ErrNotConversationPartner
	}
	return other, nil
}
