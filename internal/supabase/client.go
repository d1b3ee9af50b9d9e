package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go/types"
	"github.com/supabase-community/supabase-go"

	"estiloplus-backend/internal/config"
)

// Client wraps the Supabase API client. It is created with the service role
// key so the GoTrue admin surface is available.
type Client struct {
	Supabase *supabase.Client
	Config   *config.Config
}

func NewClient(cfg *config.Config) (*Client, error) {
	key := cfg.SupabaseServiceRoleKey
	if key == "" {
		key = cfg.SupabaseAnonKey
	}

	client, err := supabase.NewClient(cfg.SupabaseURL, key, nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
	}, nil
}

// DeleteAuthUser removes the account from Supabase Auth. Called when an
// admin deletes a user so the auth record does not outlive the row.
func (c *Client) DeleteAuthUser(userID uuid.UUID) error {
	err := c.Supabase.Auth.AdminDeleteUser(types.AdminDeleteUserRequest{
		UserID: userID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete auth user: %w", err)
	}
	return nil
}
