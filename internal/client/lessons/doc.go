// Package lessons models the lessons page: the lesson set of one topic, the
// lesson being viewed, the lessons completed in this visit, and the editing
// submachine that lets a user rewrite or delete a lesson.
//
// A Browser belongs to a single page and is not safe for concurrent use.
package lessons
