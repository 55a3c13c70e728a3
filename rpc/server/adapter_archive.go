package server

import (
	"github.com/benjmnxu/ngram/lib/store"
	"github.com/benjmnxu/ngram/rpc/common"
)

func NewArchiveServerAdapter() IRPCServerAdapter {
	return &archiveServerAdapterImpl{}
}

type archiveServerAdapterImpl struct{}

func (adapter *archiveServerAdapterImpl) Handle(req *common.Request, archive store.IArchive) *common.Response {
	// Check for nil archive
	if archive == nil {
		Logger.Errorf("handler: archive is nil")
		return common.NewFailureResponse()
	}

	// Handle different request types
	switch req.Type {
	case common.ReqTPublish:
		id, err := archive.Publish(req.Doc)
		if err != nil {
			Logger.Warningf("publish failed: %v", err)
			return common.NewFailureResponse()
		}
		return common.NewPublishSuccessResponse(id)
	case common.ReqTSearch:
		ids, err := archive.Search(req.Word)
		if err != nil {
			Logger.Warningf("search for %q failed: %v", req.Word, err)
			return common.NewFailureResponse()
		}
		return common.NewSearchSuccessResponse(ids)
	case common.ReqTRetrieve:
		doc, found, err := archive.Retrieve(req.ID)
		if err != nil {
			Logger.Warningf("retrieve %d failed: %v", req.ID, err)
			return common.NewFailureResponse()
		}
		if !found {
			return common.NewFailureResponse()
		}
		return common.NewRetrieveSuccessResponse(doc)
	default:
		Logger.Warningf("unsupported request type: %s", req.Type)
		return common.NewFailureResponse()
	}
}
