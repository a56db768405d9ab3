package handler

import (
	"github.com/gin-gonic/gin"

	apprelation "github.com/xiebiao/bookcatalog/internal/application/relation"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// RelationHandler 用户-图书关系HTTP处理器
type RelationHandler struct {
	patchRelationUseCase *apprelation.PatchRelationUseCase
}

// NewRelationHandler 创建关系处理器
func NewRelationHandler(patchRelationUseCase *apprelation.PatchRelationUseCase) *RelationHandler {
	return &RelationHandler{patchRelationUseCase: patchRelationUseCase}
}

// PatchRelation 点赞、收藏、评分
// @Summary      更新图书关系
// @Description  当前用户对图书的点赞、收藏、评分(1-5),关系不存在时自动创建;rate传null表示取消评分
// @Tags         图书关系
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        book    path int                 true "图书ID"
// @Param        request body dto.RelationRequest true "需要修改的字段"
// @Success      200 {object} response.Response{data=apprelation.RelationResponse}
// @Failure      400 {object} response.Response "参数错误(如评分超出范围)"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/book-relations/{book} [patch]
func (h *RelationHandler) PatchRelation(c *gin.Context) {
	id, ok := bookID(c, "book")
	if !ok {
		return
	}

	// 读取原始请求体,"rate": null与不传rate含义不同,交给领域层解析
	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}

	result, err := h.patchRelationUseCase.Execute(c.Request.Context(), middleware.GetActor(c), id, body)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
