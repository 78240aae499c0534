package service

import "errors"

var (
	// ErrInvalidInterval rejects reservation requests whose start is not
	// strictly before their end.
	ErrInvalidInterval = errors.New("reservation start must be before end")

	// ErrVehicleUnavailable rejects reservation requests on a broken vehicle.
	ErrVehicleUnavailable = errors.New("vehicle is not accepting reservations")

	// ErrNotOwner rejects catalog mutations by a company that does not own
	// the vehicle.
	ErrNotOwner = errors.New("vehicle belongs to another company")

	// ErrInvalidCredentials is returned for a failed login. Deliberately
	// does not distinguish unknown email from wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidICE rejects registration with an ICE number absent from the
	// company registry.
	ErrInvalidICE = errors.New("ice number not registered")
)
