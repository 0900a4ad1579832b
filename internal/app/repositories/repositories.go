package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles all repository instances for dependency injection
type Repositories struct {
	UserRepository         *UserRepository
	SkillRepository        *SkillRepository
	EventRepository        *EventRepository
	TeamRepository         *TeamRepository
	JoinRequestRepository  *JoinRequestRepository
	InvitationRepository   *InvitationRepository
	MessagingRepository    *MessagingRepository
	NotificationRepository *NotificationRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		SkillRepository:        NewSkillRepository(db),
		EventRepository:        NewEventRepository(db),
		TeamRepository:         NewTeamRepository(db),
		JoinRequestRepository:  NewJoinRequestRepository(db),
		InvitationRepository:   NewInvitationRepository(db),
		MessagingRepository:    NewMessagingRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
