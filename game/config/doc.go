// Package config provides course catalog management for Hex Golf.
//
// The config package handles:
//   - Loading courses from JSON files
//   - Course validation before use or save
//   - Default course management
//   - Course discovery and listing
//
// Course Format:
//
// Courses are stored as JSON files in the courses directory, one hole per
// file. The file name (without .json) is the course id unless the file sets
// one. Each course defines:
//   - Par, tee and hole coordinates
//   - The tiles of the hole as {"q","r","terrain"} entries
//   - An optional club bag overriding the default four clubs
//
// Available Courses:
//   - classic: par 4 with rough, bunkers and one water hazard
//   - island: par 3 onto a green surrounded by water
//   - dogleg: par 4 bending right past two bunkers
//
// Usage:
//
//	manager, err := config.NewManager("configs/courses")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	course, err := manager.LoadCourse("island")
//	defaultCourse := manager.GetDefault()
//	courses, err := manager.ListCourses()
//
// When the directory has no usable classic.json the first valid file becomes
// the default, and when it has none at all the built-in classic course is used.
package config
