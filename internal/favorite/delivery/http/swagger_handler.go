package http

// ListMine godoc
// @Summary Get my favorites
// @Description Returns the caller's favorites with user and dishes populated, or null
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{_id=string,user=object,dishes=[]object}
// @Failure 401 {object} object{error=string}
// @Router /favorites [get]
func (h *FavoritesHandler) ListMineDoc() {}

// AddMany godoc
// @Summary Add dishes to my favorites
// @Description Merges the given dish ids into the caller's favorites, creating the document on first use
// @Tags Favorites
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body []object{_id=string} true "Dishes to add"
// @Success 200 {object} object{_id=string,user=string,dishes=[]string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /favorites [post]
func (h *FavoritesHandler) AddManyDoc() {}

// ClearMine godoc
// @Summary Delete my favorites
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{_id=string,user=string,dishes=[]string}
// @Failure 401 {object} object{error=string}
// @Router /favorites [delete]
func (h *FavoritesHandler) ClearMineDoc() {}

// AddOne godoc
// @Summary Add one dish to my favorites
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Param dishId path string true "Dish ID"
// @Success 200 {object} object{_id=string,user=string,dishes=[]string}
// @Failure 401 {object} object{error=string}
// @Router /favorites/{dishId} [post]
func (h *FavoritesHandler) AddOneDoc() {}

// RemoveOne godoc
// @Summary Remove one dish from my favorites
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Param dishId path string true "Dish ID"
// @Success 200 {object} object{_id=string,user=string,dishes=[]string}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /favorites/{dishId} [delete]
func (h *FavoritesHandler) RemoveOneDoc() {}
