package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayesha-Rimione/hackmate/internal/app/models"
	"github.com/Ayesha-Rimione/hackmate/internal/app/models/dto"
	"github.com/Ayesha-Rimione/hackmate/internal/pkg/apperrors"
)

// fakeMessagingRepo backs the messaging service in tests. It also stands in
// for the user finder and the notification writer.
type fakeMessagingRepo struct {
	nextID        int64
	users         map[int64]*models.User
	conversations map[int64]*models.Conversation
	messages      []*models.Message
	notifications []*models.Notification
}

func newFakeMessagingRepo() *fakeMessagingRepo {
	return &fakeMessagingRepo{
		users:         make(map[int64]*models.User),
		conversations: make(map[int64]*models.Conversation),
	}
}

func (f *fakeMessagingRepo) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeMessagingRepo) addUser(name string) *models.User {
	user := &models.User{ID: f.id(), FirstName: name, LastName: "Tester", IsActive: true}
	f.users[user.ID] = user
	return user
}

func (f *fakeMessagingRepo) FindDirectConversation(_ context.Context, userA, userB int64) (int64, error) {
	for _, c := range f.conversations {
		if len(c.Participants) != 2 {
			continue
		}
		ids := []int64{c.Participants[0].ID, c.Participants[1].ID}
		if lo.Contains(ids, userA) && lo.Contains(ids, userB) {
			return c.ID, nil
		}
	}
	return 0, nil
}

func (f *fakeMessagingRepo) CreateConversation(_ context.Context, participantIDs []int64) (int64, error) {
	conversation := &models.Conversation{ID: f.id(), UpdatedAt: time.Now()}
	for _, id := range participantIDs {
		conversation.Participants = append(conversation.Participants, f.users[id])
	}
	f.conversations[conversation.ID] = conversation
	return conversation.ID, nil
}

func (f *fakeMessagingRepo) IsParticipant(_ context.Context, conversationID, userID int64) (bool, error) {
	c, ok := f.conversations[conversationID]
	if !ok {
		return false, nil
	}
	return lo.ContainsBy(c.Participants, func(u *models.User) bool { return u.ID == userID }), nil
}

func (f *fakeMessagingRepo) GetConversation(_ context.Context, id int64) (*models.Conversation, error) {
	c, ok := f.conversations[id]
	if !ok {
		return nil, apperrors.ErrConversationNotFound
	}
	return c, nil
}

func (f *fakeMessagingRepo) GetConversationsByUser(_ context.Context, userID int64) ([]*models.Conversation, error) {
	var result []*models.Conversation
	for _, c := range f.conversations {
		if lo.ContainsBy(c.Participants, func(u *models.User) bool { return u.ID == userID }) {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeMessagingRepo) CreateMessage(_ context.Context, message *models.Message) (int64, error) {
	message.ID = f.id()
	message.CreatedAt = time.Now()
	f.messages = append(f.messages, message)
	f.conversations[message.ConversationID].UpdatedAt = message.CreatedAt
	return message.ID, nil
}

func (f *fakeMessagingRepo) GetMessages(_ context.Context, conversationID int64, _, _ int) ([]*models.Message, int64, error) {
	messages := lo.Filter(f.messages, func(m *models.Message, _ int) bool {
		return m.ConversationID == conversationID
	})
	for _, m := range messages {
		m.Sender = f.users[m.SenderID]
	}
	return messages, int64(len(messages)), nil
}

func (f *fakeMessagingRepo) MarkMessagesRead(_ context.Context, conversationID, readerID int64) error {
	for _, m := range f.messages {
		if m.ConversationID == conversationID && m.SenderID != readerID {
			m.IsRead = true
		}
	}
	return nil
}

func (f *fakeMessagingRepo) CountUnread(_ context.Context, userID int64) (int64, error) {
	var count int64
	for _, m := range f.messages {
		if m.IsRead || m.SenderID == userID {
			continue
		}
		c := f.conversations[m.ConversationID]
		if lo.ContainsBy(c.Participants, func(u *models.User) bool { return u.ID == userID }) {
			count++
		}
	}
	return count, nil
}

func (f *fakeMessagingRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeMessagingRepo) Create(_ context.Context, notification *models.Notification) (int64, error) {
	notification.ID = f.id()
	f.notifications = append(f.notifications, notification)
	return notification.ID, nil
}

func newMessagingFixture() (MessagingService, *fakeMessagingRepo) {
	repo := newFakeMessagingRepo()
	return NewMessagingService(repo, repo, repo, zerolog.Nop()), repo
}

func TestSendMessageRequiresParticipant(t *testing.T) {
	service, repo := newMessagingFixture()
	ctx := context.Background()

	alice := repo.addUser("alice")
	bob := repo.addUser("bob")
	mallory := repo.addUser("mallory")

	conversation, err := service.StartConversation(ctx, alice.ID, &dto.StartConversationRequest{
		ParticipantIDs: []int64{bob.ID},
	})
	require.NoError(t, err)

	_, err = service.SendMessage(ctx, mallory.ID, conversation.ID, &dto.SendMessageRequest{Content: "hi"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	resp, err := service.SendMessage(ctx, alice.ID, conversation.ID, &dto.SendMessageRequest{Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", resp.Content)

	require.Len(t, repo.notifications, 1)
	assert.Equal(t, bob.ID, repo.notifications[0].UserID)
	assert.Equal(t, models.ConversationTarget(conversation.ID), repo.notifications[0].Target)
}

func TestGetMessagesRequiresParticipant(t *testing.T) {
	service, repo := newMessagingFixture()
	ctx := context.Background()

	alice := repo.addUser("alice")
	bob := repo.addUser("bob")
	mallory := repo.addUser("mallory")

	conversation, err := service.StartConversation(ctx, alice.ID, &dto.StartConversationRequest{
		ParticipantIDs: []int64{bob.ID},
	})
	require.NoError(t, err)

	_, _, err = service.GetMessages(ctx, mallory.ID, conversation.ID, 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestGetMessagesMarksUnreadRead(t *testing.T) {
	service, repo := newMessagingFixture()
	ctx := context.Background()

	alice := repo.addUser("alice")
	bob := repo.addUser("bob")

	conversation, err := service.StartConversation(ctx, alice.ID, &dto.StartConversationRequest{
		ParticipantIDs: []int64{bob.ID},
	})
	require.NoError(t, err)

	_, err = service.SendMessage(ctx, alice.ID, conversation.ID, &dto.SendMessageRequest{Content: "hello"})
	require.NoError(t, err)

	unread, err := service.GetUnreadCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread.UnreadCount)

	_, _, err = service.GetMessages(ctx, bob.ID, conversation.ID, 1, 10)
	require.NoError(t, err)

	unread, err = service.GetUnreadCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread.UnreadCount)
}

func TestStartConversationReusesDirect(t *testing.T) {
	service, repo := newMessagingFixture()
	ctx := context.Background()

	alice := repo.addUser("alice")
	bob := repo.addUser("bob")

	first, err := service.StartConversation(ctx, alice.ID, &dto.StartConversationRequest{
		ParticipantIDs: []int64{bob.ID},
	})
	require.NoError(t, err)

	second, err := service.StartConversation(ctx, bob.ID, &dto.StartConversationRequest{
		ParticipantIDs: []int64{alice.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}
