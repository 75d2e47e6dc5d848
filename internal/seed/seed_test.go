package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/buildcare-backend/internal/data/repos/testutil"
	"github.com/yungbote/buildcare-backend/internal/domain"
)

const sample = `
apartments:
  - apartment_no: Z-1
    block_name: Z
    floor_no: 1
    rent: 500
  - apartment_no: Z-2
    block_name: Z
    floor_no: 1
    rent: 650
coupons:
  - code: spring5
    discount_percent: 5
admins:
  - email: Boss@Example.com
  - email: promoted@example.com
`

func TestParseRejectsBadRows(t *testing.T) {
	_, err := Parse([]byte("coupons:\n  - code: X\n    discount_percent: 0\n"))
	require.Error(t, err)

	_, err = Parse([]byte("apartments:\n  - apartment_no: ''\n    rent: 10\n"))
	require.Error(t, err)

	_, err = Parse([]byte("admins:\n  - name: nobody\n"))
	require.Error(t, err)
}

func TestLoadDefault(t *testing.T) {
	f, err := Load("")
	require.NoError(t, err)
	require.NotEmpty(t, f.Apartments)
	require.NotEmpty(t, f.Coupons)
}

func TestApplyIsIdempotent(t *testing.T) {
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()
	testutil.SeedUser(t, gdb, "promoted@example.com", domain.RoleMember)

	f, err := Parse([]byte(sample))
	require.NoError(t, err)

	s := NewSeeder(gdb, log)
	first, err := s.Apply(ctx, f)
	require.NoError(t, err)
	require.Equal(t, int64(2), first.Apartments)
	require.Equal(t, 1, first.Coupons)
	require.Equal(t, 2, first.Admins)

	second, err := s.Apply(ctx, f)
	require.NoError(t, err)
	require.Equal(t, Report{}, second)

	var coupon domain.Coupon
	require.NoError(t, gdb.Where("code = ?", "SPRING5").First(&coupon).Error)

	var boss domain.User
	require.NoError(t, gdb.Where("email = ?", "boss@example.com").First(&boss).Error)
	require.Equal(t, domain.RoleAdmin, boss.Role)

	var promoted domain.User
	require.NoError(t, gdb.Where("email = ?", "promoted@example.com").First(&promoted).Error)
	require.Equal(t, domain.RoleAdmin, promoted.Role)
}
