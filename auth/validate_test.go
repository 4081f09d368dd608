package auth

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		password   string
		fullName   string
		phone      string
		dob        string
		wantFields []string
	}{
		{
			name:     "valid with all profile fields",
			email:    "a@x.com",
			password: "password1",
			fullName: "Jane Doe",
			phone:    "5551234567",
			dob:      "02/29/2000",
		},
		{
			name:     "valid with optional fields omitted",
			email:    "a@x.com",
			password: "password1",
		},
		{
			name:       "malformed email",
			email:      "not an email",
			password:   "password1",
			wantFields: []string{"email"},
		},
		{
			name:       "short password",
			email:      "a@x.com",
			password:   "seven77",
			wantFields: []string{"password"},
		},
		{
			name:       "digits in full name",
			email:      "a@x.com",
			password:   "password1",
			fullName:   "J4ne",
			wantFields: []string{"fullname"},
		},
		{
			name:       "phone too short",
			email:      "a@x.com",
			password:   "password1",
			phone:      "12345",
			wantFields: []string{"phone"},
		},
		{
			name:       "dob wrong format",
			email:      "a@x.com",
			password:   "password1",
			dob:        "1990-01-15",
			wantFields: []string{"dob"},
		},
		{
			name:       "dob not zero padded",
			email:      "a@x.com",
			password:   "password1",
			dob:        "1/15/1990",
			wantFields: []string{"dob"},
		},
		{
			name:       "dob impossible date",
			email:      "a@x.com",
			password:   "password1",
			dob:        "02/30/1990",
			wantFields: []string{"dob"},
		},
		{
			name:       "everything wrong at once",
			email:      "bad",
			password:   "x",
			fullName:   "J4ne",
			phone:      "abc",
			dob:        "oops",
			wantFields: []string{"email", "password", "fullname", "phone", "dob"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegistration(tt.email, tt.password, tt.fullName, tt.phone, tt.dob)
			require.Len(t, errs, len(tt.wantFields))
			for i, field := range tt.wantFields {
				require.Equal(t, field, errs[i].Field)
			}
		})
	}
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}
