package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/travelintrips/driver-portal/internal/apperrors"
	"github.com/travelintrips/driver-portal/internal/identity"
)

func TestResolver_Resolve(t *testing.T) {
	r := identity.NewResolver(nil)

	tests := []struct {
		name       string
		explicitID uint
		sessionID  uint
		want       uint
		wantErr    error
	}{
		{name: "ExplicitWins", explicitID: 5, sessionID: 7, want: 5},
		{name: "ExplicitOnly", explicitID: 5, want: 5},
		{name: "SessionFallback", sessionID: 7, want: 7},
		{name: "Unauthenticated", wantErr: apperrors.ErrAuthentication},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.explicitID, tt.sessionID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
