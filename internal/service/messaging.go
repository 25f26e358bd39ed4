package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ez2source-sys/ez2source-sub001/internal/domain"
	"github.com/ez2source-sys/ez2source-sub001/internal/logger"
	"github.com/ez2source-sys/ez2source-sub001/internal/repository"
)

type messagingService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	orgs     repository.OrganizationRepository
}

func NewMessagingService(messages repository.MessageRepository, users repository.UserRepository,
	orgs repository.OrganizationRepository) MessagingService {
	return &messagingService{
		messages: messages,
		users:    users,
		orgs:     orgs,
	}
}

// SendMessage persists a message after checking the sender may reach the
// recipient. Type and priority default to direct/normal.
func (s *messagingService) SendMessage(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	sender, err := s.users.GetByID(ctx, msg.SenderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("invalid sender: %w", err)
		}
		return nil, err
	}
	recipient, err := s.users.GetByID(ctx, msg.RecipientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("invalid recipient: %w", err)
		}
		return nil, err
	}

	if !canSendMessage(sender, recipient) {
		return nil, ErrPermissionDenied
	}

	if msg.Type == "" {
		msg.Type = domain.MessageTypeDirect
	}
	if msg.Priority == "" {
		msg.Priority = domain.MessagePriorityNormal
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// canSendMessage applies the messaging permission policy: same
// organization, super admin, or a cross-org accessible candidate.
func canSendMessage(sender, recipient *domain.User) bool {
	if sender.OrganizationID == recipient.OrganizationID {
		return true
	}
	if sender.Role == domain.UserRoleSuperAdmin {
		return true
	}
	if recipient.Role == domain.UserRoleCandidate && recipient.CrossOrgAccessible {
		return true
	}
	return false
}

// GetConversations groups the user's recent messages by partner and
// returns one entry per partner with the latest message and the unread
// count, ordered newest first.
func (s *messagingService) GetConversations(ctx context.Context, userID, limit int32) ([]domain.Conversation, error) {
	// Over-fetch so grouping by partner still fills the page.
	recent, err := s.messages.ListRecentByUser(ctx, userID, limit*2)
	if err != nil {
		return nil, err
	}

	conversations := make([]domain.Conversation, 0, limit)
	index := make(map[int32]int)

	for i := range recent {
		msg := recent[i]
		partnerID := msg.RecipientID
		if msg.SenderID != userID {
			partnerID = msg.SenderID
		}

		pos, seen := index[partnerID]
		if !seen {
			partner, err := s.users.GetByID(ctx, partnerID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					continue
				}
				return nil, err
			}
			conv := domain.Conversation{
				PartnerID:     partnerID,
				PartnerName:   partner.DisplayName(),
				PartnerRole:   partner.Role,
				LatestMessage: msg,
			}
			if org, err := s.orgs.GetByID(ctx, partner.OrganizationID); err == nil {
				conv.PartnerOrganization = org.Name
			}
			index[partnerID] = len(conversations)
			pos = len(conversations)
			conversations = append(conversations, conv)
		}

		if msg.RecipientID == userID && !msg.IsRead {
			conversations[pos].UnreadCount++
		}
	}

	if int32(len(conversations)) > limit {
		conversations = conversations[:limit]
	}
	return conversations, nil
}

// GetMessages returns the two-party thread in chronological order and
// marks the partner's unread messages as read as a side effect.
func (s *messagingService) GetMessages(ctx context.Context, userID, partnerID, limit int32) ([]domain.Message, error) {
	thread, err := s.messages.ListBetween(ctx, userID, partnerID, limit)
	if err != nil {
		return nil, err
	}

	readOn := time.Now().Format(dateTimeFormat)
	marked, err := s.messages.MarkThreadRead(ctx, userID, partnerID, readOn)
	if err != nil {
		logger.Error("Failed to mark thread read", "userID", userID, "partnerID", partnerID, "error", err)
	} else if marked > 0 {
		for i := range thread {
			if thread[i].RecipientID == userID && !thread[i].IsRead {
				thread[i].IsRead = true
				thread[i].ReadOn = &readOn
			}
		}
	}

	// Repository order is newest first; the thread view wants oldest first.
	for i, j := 0, len(thread)-1; i < j; i, j = i+1, j-1 {
		thread[i], thread[j] = thread[j], thread[i]
	}
	return thread, nil
}
