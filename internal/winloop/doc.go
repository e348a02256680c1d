// Package winloop запускает поток с очередью сообщений Win32.
// Хуки WH_KEYBOARD_LL и SetWinEventHook вызываются только пока
// установивший их поток крутит GetMessage.
package winloop
