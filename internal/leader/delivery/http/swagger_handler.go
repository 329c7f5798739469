package http

// List godoc
// @Summary List leaders
// @Tags Leaders
// @Produce json
// @Success 200 {array} object{_id=string,name=string,designation=string}
// @Router /leaders [get]
func (h *LeaderHandler) ListDoc() {}

// Create godoc
// @Summary Create leader (admin)
// @Description Stores the body as a new leader. _id and timestamps in the body are ignored.
// @Tags Leaders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object true "Leader attributes"
// @Success 200 {object} object{_id=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /leaders [post]
func (h *LeaderHandler) CreateDoc() {}

// DeleteAll godoc
// @Summary Delete all leaders (admin)
// @Tags Leaders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{n=int,ok=int}
// @Failure 403 {object} object{error=string}
// @Router /leaders [delete]
func (h *LeaderHandler) DeleteAllDoc() {}

// Get godoc
// @Summary Get leader by ID
// @Description Returns the leader or null when the id is unknown
// @Tags Leaders
// @Produce json
// @Param leaderId path string true "Leader ID"
// @Success 200 {object} object{_id=string}
// @Router /leaders/{leaderId} [get]
func (h *LeaderHandler) GetDoc() {}

// Update godoc
// @Summary Update leader attributes (admin)
// @Description Sets the given attributes and keeps the others
// @Tags Leaders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param leaderId path string true "Leader ID"
// @Param request body object true "Attributes to set"
// @Success 200 {object} object{_id=string}
// @Failure 403 {object} object{error=string}
// @Router /leaders/{leaderId} [put]
func (h *LeaderHandler) UpdateDoc() {}

// Delete godoc
// @Summary Delete leader (admin)
// @Tags Leaders
// @Security BearerAuth
// @Produce json
// @Param leaderId path string true "Leader ID"
// @Success 200 {object} object{_id=string}
// @Failure 403 {object} object{error=string}
// @Router /leaders/{leaderId} [delete]
func (h *LeaderHandler) DeleteDoc() {}
