// Package middleware — GroupMembershipMiddleware: grup üyelik kontrolü.
//
// URL'den groupId path parameter'ını alır, kullanıcının o gruba üye olup
// olmadığını doğrular ve üyelik satırını context'e ekler.
//
// Bu middleware AuthMiddleware'den SONRA çalışır — context'te user bilgisi
// zaten mevcuttur.
//
// Akış: HTTP request → AuthMiddleware → GroupMembershipMiddleware → Handler
//
// Üye olmayan kullanıcıya grup içeriği hakkında bilgi sızdırılmaz:
// "grup yok" ile "üye değilsin" aynı 403 cevabını üretir.
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/yalcinkaya/fitcircle/handlers"
	"github.com/yalcinkaya/fitcircle/models"
	"github.com/yalcinkaya/fitcircle/pkg"
	"github.com/yalcinkaya/fitcircle/repository"
)

// GroupMembershipMiddleware, grup üyelik kontrolü middleware'ı.
type GroupMembershipMiddleware struct {
	groupRepo repository.GroupRepository
}

// NewGroupMembershipMiddleware, constructor.
func NewGroupMembershipMiddleware(groupRepo repository.GroupRepository) *GroupMembershipMiddleware {
	return &GroupMembershipMiddleware{groupRepo: groupRepo}
}

// Require, grup üyeliği zorunlu kılan middleware.
//
// Context'ten user bilgisini alır (AuthMiddleware tarafından eklenir),
// URL'den groupId path parameter'ını çeker ve üyelik satırını sorgular.
// Üyelik varsa groupID + member context'e eklenir; yoksa 403 döner.
func (m *GroupMembershipMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(handlers.UserContextKey).(*models.User)
		if !ok {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
			return
		}

		// Go 1.22+ PathValue: route tanımındaki {groupId} parametresini çeker
		groupID := r.PathValue("groupId")
		if groupID == "" {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "groupId is required")
			return
		}

		member, err := m.groupRepo.GetMember(r.Context(), groupID, user.ID)
		if err != nil {
			if errors.Is(err, pkg.ErrNotFound) {
				pkg.Error(w, pkg.ErrNotAMember)
				return
			}
			pkg.Error(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), handlers.GroupIDContextKey, groupID)
		ctx = context.WithValue(ctx, handlers.MemberContextKey, member)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
