package user

import (
	"context"
	"errors"
	"fmt"

	"justfood/pkg/models"
)

var ErrInvalidAddress = errors.New("address line1, city, state, pincode and phone are required")

func validateAddress(req models.AddressRequest) error {
	if req.Line1 == "" || req.City == "" || req.State == "" || req.Pincode == "" || req.Phone == "" {
		return ErrInvalidAddress
	}
	return nil
}

// ListAddresses returns the user's saved addresses, newest first. Addresses
// captured from guest checkouts carry no user_id and never show up here.
func (r *Repo) ListAddresses(ctx context.Context, userID int64) ([]models.Address, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, label, line1, line2, city, state, pincode, phone, created_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	defer rows.Close()

	var addresses []models.Address
	for rows.Next() {
		var a models.Address
		err := rows.Scan(&a.ID, &a.UserID, &a.Label, &a.Line1, &a.Line2,
			&a.City, &a.State, &a.Pincode, &a.Phone, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func (r *Repo) CreateAddress(ctx context.Context, userID int64, req models.AddressRequest) (*models.Address, error) {
	if err := validateAddress(req); err != nil {
		return nil, err
	}

	label := req.Label
	if label == "" {
		label = "Home"
	}

	a := models.Address{
		UserID:  &userID,
		Label:   label,
		Line1:   req.Line1,
		Line2:   req.Line2,
		City:    req.City,
		State:   req.State,
		Pincode: req.Pincode,
		Phone:   req.Phone,
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO addresses (user_id, label, line1, line2, city, state, pincode, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, userID, label, req.Line1, req.Line2, req.City, req.State, req.Pincode, req.Phone).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert address: %w", err)
	}
	return &a, nil
}
