package repository

import (
	"ideaboard-core/internal/domain"
	"ideaboard-core/internal/gateway"
)

// DTO to domain conversion. Field-for-field; any shape divergence between
// wire and domain is resolved here and nowhere else.

func nodeFromDTO(dto gateway.NodeDTO) domain.Node {
	n := domain.Node{
		ID:    dto.ID,
		Type:  domain.NodeType(dto.Type),
		Title: dto.Title,
		Body:  dto.Body,
		Author: domain.Author{
			ID:        dto.Author.ID,
			Name:      dto.Author.Name,
			AvatarURL: dto.Author.AvatarURL,
		},
		TagIDs: dto.TagIDs,
		Reactions: domain.Reactions{
			Like:       reactionFromDTO(dto.Reactions.Like),
			Interested: reactionFromDTO(dto.Reactions.Interested),
			WantToTry:  reactionFromDTO(dto.Reactions.WantToTry),
		},
		CommentCount: dto.CommentCount,
		CreatedAt:    dto.CreatedAt,
		UpdatedAt:    dto.UpdatedAt,
	}
	if dto.Parent != nil {
		n.Parent = &domain.ParentRef{
			ID:    dto.Parent.ID,
			Type:  domain.NodeType(dto.Parent.Type),
			Title: dto.Parent.Title,
		}
	}
	return n
}

func reactionFromDTO(dto gateway.ReactionStateDTO) domain.ReactionState {
	return domain.ReactionState{Count: dto.Count, IsReacted: dto.IsReacted}
}

func commentFromDTO(dto gateway.CommentDTO) domain.Comment {
	c := domain.Comment{
		ID:       dto.ID,
		NodeID:   dto.NodeID,
		ParentID: dto.ParentID,
		Author: domain.Author{
			ID:        dto.Author.ID,
			Name:      dto.Author.Name,
			AvatarURL: dto.Author.AvatarURL,
		},
		Body:      dto.Body,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	}
	if len(dto.Replies) > 0 {
		c.Replies = make([]domain.Comment, len(dto.Replies))
		for i, r := range dto.Replies {
			c.Replies[i] = commentFromDTO(r)
		}
	}
	return c
}

func tagFromDTO(dto gateway.TagDTO) domain.Tag {
	return domain.Tag{ID: dto.ID, Name: dto.Name, UsageCount: dto.UsageCount}
}

func userFromDTO(dto gateway.UserDTO) domain.User {
	return domain.User{
		ID:          dto.ID,
		DisplayName: dto.DisplayName,
		AvatarURL:   dto.AvatarURL,
	}
}

func reactedUsersPageFromDTO(dto gateway.ReactedUsersPageDTO) domain.ReactedUsersPage {
	page := domain.ReactedUsersPage{
		NextCursor: dto.NextCursor,
		HasMore:    dto.HasMore,
		Total:      dto.Total,
	}
	page.Users = make([]domain.ReactedUser, len(dto.Users))
	for i, u := range dto.Users {
		page.Users[i] = domain.ReactedUser{
			UserID:      u.UserID,
			UserName:    u.UserName,
			UserPicture: u.UserPicture,
			ReactedAt:   u.ReactedAt,
		}
	}
	return page
}

func draftToCreateRequest(draft domain.NodeDraft) gateway.CreateNodeRequest {
	req := gateway.CreateNodeRequest{
		Type:   string(draft.Type),
		Title:  draft.Title,
		Body:   draft.Body,
		TagIDs: draft.TagIDs,
	}
	if draft.Parent != nil {
		req.Parent = &gateway.ParentRefDTO{
			ID:    draft.Parent.ID,
			Type:  string(draft.Parent.Type),
			Title: draft.Parent.Title,
		}
	}
	return req
}
