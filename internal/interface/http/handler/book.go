package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	listBooksUseCase   *appbook.ListBooksUseCase
	publishBookUseCase *appbook.PublishBookUseCase
	updateBookUseCase  *appbook.UpdateBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooksUseCase *appbook.ListBooksUseCase,
	publishBookUseCase *appbook.PublishBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
) *BookHandler {
	return &BookHandler{
		listBooksUseCase:   listBooksUseCase,
		publishBookUseCase: publishBookUseCase,
		updateBookUseCase:  updateBookUseCase,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  返回图书聚合视图(点赞数、平均评分、创建者、读者),支持价格过滤、搜索和排序
// @Tags         图书
// @Produce      json
// @Param        price    query string false "精确价格,如22或22.00"
// @Param        search   query string false "书名或作者包含(不区分大小写)"
// @Param        ordering query string false "排序字段price、author,前缀-表示倒序,逗号分隔"
// @Success      200 {object} response.Response{data=[]appbook.BookViewResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var query dto.ListBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Price:    query.Price,
		Search:   query.Search,
		Ordering: query.Ordering,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookViewResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := bookID(c, "id")
	if !ok {
		return
	}

	result, err := h.listBooksUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// PublishBook 创建图书
// @Summary      创建图书
// @Description  创建者强制为当前登录用户,请求体中的owner被忽略
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BookRequest true "图书信息"
// @Success      201 {object} response.Response{data=appbook.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/books [post]
func (h *BookHandler) PublishBook(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	// 2. 调用应用层用例(操作者由认证中间件注入)
	result, err := h.publishBookUseCase.Execute(c.Request.Context(), middleware.GetActor(c), appbook.PublishBookRequest{
		Name:   req.Name,
		Price:  req.Price.String(),
		Author: req.Author,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateBook 整体修改图书
// @Summary      修改图书
// @Description  仅管理员或图书创建者可以修改
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int             true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      403 {object} response.Response "无权限"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := bookID(c, "id")
	if !ok {
		return
	}

	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	price := req.Price.String()
	h.update(c, id, appbook.UpdateBookRequest{
		Name:   &req.Name,
		Price:  &price,
		Author: &req.Author,
	})
}

// PatchBook 部分修改图书
// @Summary      部分修改图书
// @Description  只修改传入的字段,权限规则与整体修改相同
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                  true "图书ID"
// @Param        request body dto.PatchBookRequest true "需要修改的字段"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      403 {object} response.Response "无权限"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [patch]
func (h *BookHandler) PatchBook(c *gin.Context) {
	id, ok := bookID(c, "id")
	if !ok {
		return
	}

	var req dto.PatchBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	h.update(c, id, appbook.UpdateBookRequest{
		Name:   req.Name,
		Price:  dto.NumberString(req.Price),
		Author: req.Author,
	})
}

func (h *BookHandler) update(c *gin.Context, id uint, req appbook.UpdateBookRequest) {
	result, err := h.updateBookUseCase.Execute(c.Request.Context(), middleware.GetActor(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Description  仅管理员或图书创建者可以删除,关联的用户关系一并删除
// @Tags         图书
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      204 "删除成功"
// @Failure      403 {object} response.Response "无权限"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := bookID(c, "id")
	if !ok {
		return
	}

	if err := h.updateBookUseCase.Delete(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// bookID 解析路径中的图书ID
// 非正整数的ID不可能存在,直接返回图书不存在
func bookID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		response.Error(c, book.ErrBookNotFound)
		return 0, false
	}
	return uint(id), true
}
