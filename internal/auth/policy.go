package auth

import (
	"net/http"

	"github.com/saulo-duarte/examly-api/internal/apperror"
	"github.com/saulo-duarte/examly-api/internal/config"
	"github.com/sirupsen/logrus"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

var AllRoles = []Role{RoleAdmin, RoleStudent}

func (r Role) IsValid() bool {
	for _, v := range AllRoles {
		if r == v {
			return true
		}
	}
	return false
}

type Operation string

const (
	OpQuestionManage    Operation = "question.manage"
	OpExamManage        Operation = "exam.manage"
	OpExamListAll       Operation = "exam.list_all"
	OpExamListAvailable Operation = "exam.list_available"
	OpExamRead          Operation = "exam.read"
	OpResultSubmit      Operation = "result.submit"
	OpResultListOwn     Operation = "result.list_own"
	OpResultRead        Operation = "result.read"
	OpResultListByExam  Operation = "result.list_by_exam"
	OpResultListAll     Operation = "result.list_all"
	OpProfileRead       Operation = "profile.read"
)

// policies lists the roles admitted to each operation. Operations missing
// from the table are denied to everyone.
var policies = map[Operation][]Role{
	OpQuestionManage:    {RoleAdmin},
	OpExamManage:        {RoleAdmin},
	OpExamListAll:       {RoleAdmin},
	OpExamListAvailable: {RoleStudent},
	OpExamRead:          {RoleAdmin, RoleStudent},
	OpResultSubmit:      {RoleStudent},
	OpResultListOwn:     {RoleStudent},
	OpResultRead:        {RoleAdmin, RoleStudent},
	OpResultListByExam:  {RoleAdmin},
	OpResultListAll:     {RoleAdmin},
	OpProfileRead:       {RoleAdmin, RoleStudent},
}

var (
	ErrUnauthenticated = apperror.Unauthenticated("not authenticated")
	ErrForbidden       = apperror.Forbidden("access denied")
)

func Authorize(claims *UserClaims, op Operation) error {
	if claims == nil || claims.UserID == "" {
		return ErrUnauthenticated
	}
	for _, role := range policies[op] {
		if claims.HasRole(role) {
			return nil
		}
	}
	return ErrForbidden
}

// AuthorizeOwner admits admins for any resource and other principals only
// for resources they own.
func AuthorizeOwner(claims *UserClaims, ownerID string) error {
	if claims == nil || claims.UserID == "" {
		return ErrUnauthenticated
	}
	if claims.IsAdmin() || claims.UserID == ownerID {
		return nil
	}
	return ErrForbidden
}

func Require(op Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, _ := GetUserClaimsFromContext(r.Context())
			if err := Authorize(claims, op); err != nil {
				config.WithContext(r.Context()).WithFields(logrus.Fields{
					"operation": op,
				}).Warn("Access gate rejected request")
				config.WriteError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
