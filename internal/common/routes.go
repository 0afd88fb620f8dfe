package common

import "net/url"

// Client-side routes.
const (
	RouteHome    = "/"
	RouteSignup  = "/signup"
	RouteLogin   = "/login"
	RouteTopics  = "/topics"
	RouteProfile = "/profile"
)

// LessonsRoute returns the guarded lessons route for a topic.
func LessonsRoute(topic string) string {
	return "/lessons/" + url.PathEscape(topic)
}

// QuizRoute returns the quiz route for a topic.
func QuizRoute(topic string) string {
	return "/quiz/" + url.PathEscape(topic)
}
