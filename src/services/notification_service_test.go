package services

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mednest/Backend-Med-Nest/src/models"
)

func TestNotificationsAreRecipientScoped(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	alice := env.addUser("Alice")
	bob := env.addUser("Bob")

	env.notificationService.Notify(ctx, alice.Id, models.NotificationTypeLike, &bob.Id, nil)

	notifications, _, err := env.notificationService.List(ctx, alice.Id, 1, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.False(t, notifications[0].Read)

	// another user can neither read nor delete it
	err = env.notificationService.MarkRead(ctx, notifications[0].Id, bob.Id)
	requireAPIError(t, err, fiber.StatusNotFound)
	err = env.notificationService.Delete(ctx, notifications[0].Id, bob.Id)
	requireAPIError(t, err, fiber.StatusNotFound)

	require.NoError(t, env.notificationService.MarkRead(ctx, notifications[0].Id, alice.Id))
	notifications, _, err = env.notificationService.List(ctx, alice.Id, 1, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.True(t, notifications[0].Read)

	require.NoError(t, env.notificationService.Delete(ctx, notifications[0].Id, alice.Id))
	notifications, _, err = env.notificationService.List(ctx, alice.Id, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}
