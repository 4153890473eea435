package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edupanel/student-portal/internal/services"
	"github.com/edupanel/student-portal/internal/sessions"
	"github.com/edupanel/student-portal/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	service services.StudentService
	export  services.ExportService
	store   *sessions.Store
}

func NewStudentHandler(service services.StudentService, export services.ExportService, store *sessions.Store, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		export:      export,
		store:       store,
	}
}

// Index lists students, optionally filtered by the search query parameter.
func (h *StudentHandler) Index(c *gin.Context) {
	search := c.Query("search")
	h.LogRequest(c, "Listing students", "search", search)

	students, err := h.service.List(c.Request.Context(), search)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Students": students,
		"Search":   search,
		"Username": c.GetString(ContextUsernameKey),
		"Flashes":  h.popFlashes(c),
	})
}

// Add creates a student from the posted form fields.
func (h *StudentHandler) Add(c *gin.Context) {
	form := services.StudentForm{
		Name:  c.PostForm("name"),
		Email: c.PostForm("email"),
		Phone: c.PostForm("phone"),
	}

	id, err := h.service.Add(c.Request.Context(), c.GetString(ContextUsernameKey), form)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Student added", "student_id", id)
	h.addFlash(c, "Student added successfully")
	c.Redirect(http.StatusFound, "/")
}

// Update overwrites the student identified by the posted id field.
func (h *StudentHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.PostForm("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid student id"})
		return
	}

	form := services.StudentForm{
		Name:  c.PostForm("name"),
		Email: c.PostForm("email"),
		Phone: c.PostForm("phone"),
	}

	if err := h.service.Update(c.Request.Context(), c.GetString(ContextUsernameKey), uint(id), form); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.addFlash(c, "Student updated")
	c.Redirect(http.StatusFound, "/")
}

// Delete removes the student identified by the path parameter.
func (h *StudentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		// Non-integer ids do not address any route target.
		c.Status(http.StatusNotFound)
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetString(ContextUsernameKey), uint(id)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.addFlash(c, "Student deleted")
	c.Redirect(http.StatusFound, "/")
}

// Export streams the student list as an xlsx workbook.
func (h *StudentHandler) Export(c *gin.Context) {
	search := c.Query("search")
	h.LogRequest(c, "Exporting students", "search", search)

	buf, err := h.export.ExportStudents(c.Request.Context(), search)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="students.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// addFlash queues a flash for the current session, if any. Anonymous
// requests have nowhere to flash to and skip silently.
func (h *StudentHandler) addFlash(c *gin.Context, message string) {
	token := c.GetString(ContextTokenKey)
	if err := h.store.AddFlash(c.Request.Context(), token, message); err != nil {
		h.LogError(c, err, "Failed to add flash")
	}
}

func (h *StudentHandler) popFlashes(c *gin.Context) []string {
	token := c.GetString(ContextTokenKey)
	flashes, err := h.store.PopFlashes(c.Request.Context(), token)
	if err != nil {
		h.LogError(c, err, "Failed to pop flashes")
		return nil
	}
	return flashes
}
