package memory

import (
	"testing"

	"github.com/pratik-mahalle/numera/internal/domain/report"
	"github.com/pratik-mahalle/numera/internal/domain/user"
	"github.com/pratik-mahalle/numera/internal/repository/storetest"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) (user.Repository, report.Repository) {
		s := New(nil)
		return s.UserRepo(), s.ReportRepo()
	})
}
