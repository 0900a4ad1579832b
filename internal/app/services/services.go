package services

// Services defined in this package:
// - AuthService: registration, login and token issuing
// - UserService: user browsing, profiles and profile skills
// - SkillService: the shared skill catalog
// - EventService: events, registrations and tags
// - TeamService: teams, memberships, join requests and invitations
// - MessagingService: conversations and messages
// - NotificationService: the per-user notification log
//
// Each service declares the narrow repository interfaces it consumes; the
// concrete repositories in internal/app/repositories satisfy them.
