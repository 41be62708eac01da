package api

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/fitsphere/coaching/pkg/internal/http/exts"
	"github.com/fitsphere/coaching/pkg/internal/models"
)

func MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL).Name("API")
	{
		auth := api.Group("/auth").Name("Auth API")
		{
			auth.Post("/register", register)
			auth.Post("/login", login)
			auth.Get("/users", exts.AuthMiddleware, exts.RoleRequired(models.RoleAdmin), listAccounts)
			auth.Get("/me", exts.AuthMiddleware, getUserinfo)
		}

		meetings := api.Group("/meetings").Name("Meetings API")
		{
			meetings.Get("/public/:meetingId", getPublicMeeting)

			meetings.Post("/", exts.AuthMiddleware, createMeeting)
			meetings.Get("/", exts.AuthMiddleware, listOwnedMeetings)
			meetings.Get("/all", exts.AuthMiddleware, exts.RoleRequired(models.RoleAdmin), listAllMeetings)
			meetings.Get("/:meetingId", exts.AuthMiddleware, getMeeting)
			meetings.Put("/:meetingId", exts.AuthMiddleware, editMeeting)
			meetings.Delete("/:meetingId", exts.AuthMiddleware, deleteMeeting)
			meetings.Patch("/:meetingId/status", exts.AuthMiddleware, editMeetingStatus)
			meetings.Post("/:meetingId/notify-start", exts.AuthMiddleware, notifyMeetingStart)

			meetings.Post("/:meetingId/join", exts.AuthMiddleware, joinMeetingRoom)
			meetings.Post("/:meetingId/leave", exts.AuthMiddleware, leaveMeetingRoom)
			meetings.Get("/:meetingId/participants", exts.AuthMiddleware, getMeetingParticipants)

			meetings.Post("/:meetingId/connection", exts.AuthMiddleware, setConnectionStatus)
			meetings.Get("/:meetingId/connection", exts.AuthMiddleware, getConnectionStatus)
			meetings.Delete("/:meetingId/connection", exts.AuthMiddleware, clearConnectionStatus)

			webrtc := meetings.Group("/:meetingId/webrtc").Use(exts.AuthMiddleware).Name("Signaling API")
			{
				webrtc.Post("/offer", postSignalingOffer)
				webrtc.Get("/offer", getSignalingOffer)
				webrtc.Post("/answer", postSignalingAnswer)
				webrtc.Get("/answer", getSignalingAnswer)
				webrtc.Post("/ice", postIceCandidate)
				webrtc.Get("/ice", listIceCandidates)
			}
		}

		plans := api.Group("/plans").Use(exts.AuthMiddleware).Name("Exercise Plans API")
		{
			plans.Post("/", exts.RoleRequired(models.RoleAdmin), createExercisePlan)
			plans.Post("/bulk", exts.RoleRequired(models.RoleAdmin), createExercisePlanBatch)
			plans.Get("/", exts.RoleRequired(models.RoleAdmin), listAllExercisePlans)
			plans.Get("/user/:accountId", listExercisePlans)
			plans.Delete("/user/:accountId", exts.RoleRequired(models.RoleAdmin), deleteExercisePlansForAccount)
			plans.Put("/:planId", editExercisePlan)
			plans.Delete("/:planId", deleteExercisePlan)
		}

		trackers := api.Group("/trackers").Use(exts.AuthMiddleware).Name("Day Trackers API")
		{
			trackers.Post("/", createDayTracker)
			trackers.Get("/user/:accountId", listDayTrackers)
			trackers.Get("/user/:accountId/week", getWeeklyView)
			trackers.Post("/complete", markExerciseComplete)
			trackers.Delete("/:trackerId", deleteDayTracker)
		}

		details := api.Group("/details").Use(exts.AuthMiddleware).Name("User Details API")
		{
			details.Post("/", createUserDetails)
			details.Get("/", exts.RoleRequired(models.RoleAdmin), listAllUserDetails)
			details.Get("/user/:accountId", listUserDetails)
			details.Get("/user/:accountId/current", getCurrentUserDetails)
			details.Put("/:detailsId", editUserDetails)
			details.Delete("/:detailsId", deleteUserDetails)
		}
	}

	app.Get("/ws", exts.AuthMiddleware, websocket.New(unifiedGateway))
}
