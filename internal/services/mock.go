package services

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockIPFSUploader is a mock implementation of IPFSUploader
type MockIPFSUploader struct {
	mock.Mock
}

func NewMockIPFSUploader() *MockIPFSUploader { return &MockIPFSUploader{} }

func (m *MockIPFSUploader) UploadToIPFS(ctx context.Context, base64Content, mimeType string) (string, error) {
	args := m.Called(ctx, base64Content, mimeType)
	return args.String(0), args.Error(1)
}

// MockNFTUploader is a mock implementation of NFTUploader
type MockNFTUploader struct {
	mock.Mock
}

func NewMockNFTUploader() *MockNFTUploader { return &MockNFTUploader{} }

func (m *MockNFTUploader) CreateNFT(ctx context.Context, req UploadNftRequest) (*UploadNftResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*UploadNftResult), args.Error(1)
}

// MockMinter is a mock implementation of Minter
type MockMinter struct {
	mock.Mock
}

func NewMockMinter() *MockMinter { return &MockMinter{} }

func (m *MockMinter) MintAndSend(ctx context.Context, nftUID string, tokenCount int) (*MintResult, error) {
	args := m.Called(ctx, nftUID, tokenCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MintResult), args.Error(1)
}
