// Package services contains the business logic of the platform.
//
// Services defined in this package:
//   - AuthService: registration, login and current-user lookup
//   - UserService: profile editing including resume / picture uploads
//   - SessionService: session lifecycle and availability queries
//   - BookingService: booking lifecycle gated by capacity accounting
//   - ChatService: stateless pass-through to the assistant completion API
//
// Each service depends on small store interfaces declared next to it and
// satisfied by the repositories package, so tests can substitute mocks.
package services
