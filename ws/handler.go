package ws

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

// inbound is the client-to-server event frame.
type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// UpgradeRequired rejects plain HTTP requests on the websocket route.
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve returns the websocket handler wired to the hub.
func Serve(hub *Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := hub.NewClient(conn)
		go client.writePump()

		defer hub.Remove(client)
		for {
			var msg inbound
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			dispatch(hub, client, msg)
		}
	})
}

// writePump drains the client's outbound channel onto the socket. The
// channel is closed by Hub.Remove, which ends the pump and the connection.
func (c *Client) writePump() {
	defer c.conn.Close()
	for env := range c.send {
		if err := c.conn.WriteJSON(env); err != nil {
			return
		}
	}
}

func dispatch(hub *Hub, client *Client, msg inbound) {
	switch msg.Event {
	case "courseCreated":
		var payload struct {
			CourseID       json.Number `json:"courseId"`
			CourseTitle    string      `json:"courseTitle"`
			InstructorName string      `json:"instructorName"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			logrus.WithError(err).Warn("Bad courseCreated payload")
			return
		}
		hub.Broadcast(NewEnvelope("newCourseNotification", fiber.Map{
			"type":       "course_created",
			"message":    "New course: " + payload.CourseTitle,
			"courseId":   payload.CourseID,
			"instructor": payload.InstructorName,
		}))

	case "videoUploadProgress":
		client.Reply(NewEnvelope("uploadProgress", msg.Data))

	case "sendNotification":
		hub.Broadcast(NewEnvelope("receiveNotification", msg.Data))

	case "joinCourseRoom":
		courseID, ok := parseCourseID(msg.Data)
		if !ok {
			logrus.Warn("joinCourseRoom without a course id")
			return
		}
		hub.Join(client, CourseTopic(courseID))

	case "leaveCourseRoom":
		courseID, ok := parseCourseID(msg.Data)
		if !ok {
			return
		}
		hub.Leave(client, CourseTopic(courseID))

	default:
		logrus.WithField("event", msg.Event).Debug("Ignoring unknown websocket event")
	}
}

// parseCourseID accepts a bare JSON string or number course id.
func parseCourseID(raw json.RawMessage) (string, bool) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil && asString != "" {
		return asString, true
	}
	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err == nil && asNumber > 0 {
		return strconv.FormatUint(uint64(asNumber), 10), true
	}
	return "", false
}

// TopicForCourse is a convenience for publishers holding a numeric id.
func TopicForCourse(courseID uint) string {
	return CourseTopic(fmt.Sprint(courseID))
}
